package app

import (
	"fmt"

	sgproxyHTTP "github.com/maasoft/sg-gateway/internal/sgproxy/http"
	sgproxyUseCase "github.com/maasoft/sg-gateway/internal/sgproxy/usecase"
)

// ProxyUseCase returns the use case forwarding CVU and transfer requests to SG.
func (c *Container) ProxyUseCase() (sgproxyUseCase.ProxyUseCase, error) {
	var err error
	c.proxyUseCaseInit.Do(func() {
		c.proxyUseCase, err = c.initProxyUseCase()
		if err != nil {
			c.initErrors["proxyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["proxyUseCase"]; exists {
		return nil, storedErr
	}
	return c.proxyUseCase, nil
}

// UserUseCase returns the use case for SG user lookup and creation.
func (c *Container) UserUseCase() (sgproxyUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// ProxyHandler returns the HTTP handler for CVU and transfer requests.
func (c *Container) ProxyHandler() (*sgproxyHTTP.ProxyHandler, error) {
	var err error
	c.proxyHandlerInit.Do(func() {
		c.proxyHandler, err = c.initProxyHandler()
		if err != nil {
			c.initErrors["proxyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["proxyHandler"]; exists {
		return nil, storedErr
	}
	return c.proxyHandler, nil
}

// UserHandler returns the HTTP handler for SG users.
func (c *Container) UserHandler() (*sgproxyHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		c.userHandler, err = c.initUserHandler()
		if err != nil {
			c.initErrors["userHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}

func (c *Container) initProxyUseCase() (sgproxyUseCase.ProxyUseCase, error) {
	client, err := c.SGClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get sg client for proxy use case: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for proxy use case: %w", err)
	}

	baseUseCase := sgproxyUseCase.NewProxyUseCase(c.config, client, sessionUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for proxy use case: %w", err)
		}
		return sgproxyUseCase.NewProxyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initUserUseCase() (sgproxyUseCase.UserUseCase, error) {
	client, err := c.SGClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get sg client for user use case: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for user use case: %w", err)
	}

	baseUseCase := sgproxyUseCase.NewUserUseCase(c.config, client, sessionUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return sgproxyUseCase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initProxyHandler() (*sgproxyHTTP.ProxyHandler, error) {
	proxyUseCase, err := c.ProxyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get proxy use case for proxy handler: %w", err)
	}
	return sgproxyHTTP.NewProxyHandler(proxyUseCase, c.Logger()), nil
}

func (c *Container) initUserHandler() (*sgproxyHTTP.UserHandler, error) {
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}
	return sgproxyHTTP.NewUserHandler(userUseCase, c.Logger()), nil
}
