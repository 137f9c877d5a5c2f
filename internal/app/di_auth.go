package app

import (
	"context"
	"fmt"

	authCache "github.com/maasoft/sg-gateway/internal/auth/cache"
	authHTTP "github.com/maasoft/sg-gateway/internal/auth/http"
	authService "github.com/maasoft/sg-gateway/internal/auth/service"
	authUseCase "github.com/maasoft/sg-gateway/internal/auth/usecase"
	"github.com/maasoft/sg-gateway/internal/sgclient"
)

// TokenService returns the token service used for the inbound notification token.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// DigestSigner returns the signer of SG login requests.
func (c *Container) DigestSigner() authService.DigestSigner {
	c.digestSignerInit.Do(func() {
		c.digestSigner = authService.NewDigestSigner()
	})
	return c.digestSigner
}

// SGClient returns the HTTP client shared by every call to SG.
func (c *Container) SGClient() (*sgclient.Client, error) {
	var err error
	c.sgClientInit.Do(func() {
		c.sgClient, err = c.initSGClient()
		if err != nil {
			c.initErrors["sgClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sgClient"]; exists {
		return nil, storedErr
	}
	return c.sgClient, nil
}

// SGPassword returns the plain SG shared secret, decrypting it with the KMS
// key when KMS_KEY_URI is set.
func (c *Container) SGPassword(ctx context.Context) (string, error) {
	var err error
	c.sgPasswordInit.Do(func() {
		c.sgPassword, err = c.initSGPassword(ctx)
		if err != nil {
			c.initErrors["sgPassword"] = err
		}
	})
	if err != nil {
		return "", err
	}
	if storedErr, exists := c.initErrors["sgPassword"]; exists {
		return "", storedErr
	}
	return c.sgPassword, nil
}

// SessionUseCase returns the SG session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the HTTP handler for the auth diagnostics endpoints.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.initErrors["sessionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

func (c *Container) initSGClient() (*sgclient.Client, error) {
	clientConfig := sgclient.Config{
		BaseURL:        c.config.SGBaseURL,
		Timeout:        c.config.SGHTTPTimeout,
		ConnectTimeout: c.config.SGHTTPConnectTimeout,
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for sg client: %w", err)
	}
	if provider != nil {
		clientConfig.MeterProvider = provider.MeterProvider()
	}

	return sgclient.New(clientConfig), nil
}

func (c *Container) initSGPassword(ctx context.Context) (string, error) {
	if c.config.KMSKeyURI == "" || c.config.SGPassword == "" {
		return c.config.SGPassword, nil
	}
	password, err := c.KMSService().DecryptString(ctx, c.config.KMSKeyURI, c.config.SGPassword)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt SG_PASSWORD: %w", err)
	}
	return password, nil
}

// initSessionUseCase creates the session use case with its own token cache.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	client, err := c.SGClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get sg client for session use case: %w", err)
	}

	password, err := c.SGPassword(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get sg password for session use case: %w", err)
	}

	// The session use case needs the plain secret; the shared config keeps the stored value.
	sessionConfig := *c.config
	sessionConfig.SGPassword = password

	baseUseCase := authUseCase.NewSessionUseCase(
		&sessionConfig,
		client,
		authCache.NewTokenCache(c.config.SGTokenRenewLeeway),
		c.DigestSigner(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}
	return authHTTP.NewSessionHandler(sessionUseCase, c.Logger()), nil
}
