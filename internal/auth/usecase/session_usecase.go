package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	authService "github.com/maasoft/sg-gateway/internal/auth/service"
	"github.com/maasoft/sg-gateway/internal/config"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

// sessionUseCase implements SessionUseCase against the SG login endpoint.
type sessionUseCase struct {
	config *config.Config
	client SGClient
	cache  TokenCache
	signer authService.DigestSigner
	group  singleflight.Group
	now    func() time.Time
}

// Option configures the session use case.
type Option func(*sessionUseCase)

// WithClock overrides the time source used to sign logins and compute expiries.
func WithClock(now func() time.Time) Option {
	return func(s *sessionUseCase) {
		s.now = now
	}
}

// GetOrRefreshToken returns a token valid beyond the cache leeway.
//
// The login itself runs detached from ctx so that a caller giving up does not
// abort a login other callers are waiting on; it stays bounded by the SG client
// timeout.
func (s *sessionUseCase) GetOrRefreshToken(ctx context.Context, entityID string) (string, error) {
	entity, err := s.resolveEntity(entityID)
	if err != nil {
		return "", err
	}

	if token, ok := s.cache.GetValid(entity); ok {
		return token, nil
	}

	loginCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(entity, func() (any, error) {
		// A login that finished while this call was queued may already have filled the cache.
		if token, ok := s.cache.GetValid(entity); ok {
			return token, nil
		}

		session, err := s.login(loginCtx, entity)
		if err != nil {
			return "", err
		}

		s.cache.Set(entity, session.Token, session.ExpiresAt)
		return session.Token, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *sessionUseCase) AuthHeaders(ctx context.Context, entityID string) (map[string]string, error) {
	token, err := s.GetOrRefreshToken(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": s.config.SGAuthScheme + " " + token}, nil
}

func (s *sessionUseCase) EnsureToken(ctx context.Context, entityID string) (authDomain.CacheStatus, error) {
	if _, err := s.GetOrRefreshToken(ctx, entityID); err != nil {
		return authDomain.CacheStatus{}, err
	}
	return s.CacheStatus(ctx, entityID)
}

func (s *sessionUseCase) LoginDebug(ctx context.Context, entityID string) (*authDomain.DebugSummary, error) {
	entity, err := s.resolveEntity(entityID)
	if err != nil {
		return nil, err
	}

	raw, err := s.requestLogin(ctx, entity)
	if err != nil {
		return nil, err
	}
	return newDebugSummary(raw), nil
}

func (s *sessionUseCase) CacheStatus(ctx context.Context, entityID string) (authDomain.CacheStatus, error) {
	entity, err := s.resolveEntity(entityID)
	if err != nil {
		return authDomain.CacheStatus{}, err
	}
	return s.cache.Inspect(entity), nil
}

func (s *sessionUseCase) resolveEntity(entityID string) (string, error) {
	if entity := strings.TrimSpace(entityID); entity != "" {
		return entity, nil
	}
	if s.config.SGEntityID != "" {
		return s.config.SGEntityID, nil
	}
	return "", authDomain.ErrEntityNotConfigured
}

// login performs the SG login and normalizes its response.
func (s *sessionUseCase) login(ctx context.Context, entityID string) (*authDomain.Session, error) {
	raw, err := s.requestLogin(ctx, entityID)
	if err != nil {
		return nil, err
	}

	token := extractToken(raw)
	if token == "" {
		return nil, authDomain.NewUpstreamAuthError(
			"no token in response (keys: "+strings.Join(raw.Keys(), ", ")+")", 0, "", nil,
		)
	}

	return &authDomain.Session{
		Token:     token,
		ExpiresAt: resolveExpiry(raw, s.now()),
		Raw:       raw,
	}, nil
}

// requestLogin posts a freshly signed login body and decodes the JSON object SG returns.
func (s *sessionUseCase) requestLogin(ctx context.Context, entityID string) (authDomain.RawObject, error) {
	if err := s.checkCredentials(entityID); err != nil {
		return nil, err
	}

	body, err := s.signer.NewLoginRequest(s.config.SGUserName, s.config.SGPassword, entityID, s.now())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build login request")
	}

	resp, err := s.client.Do(ctx, http.MethodPost, s.config.SGLoginPath, nil, body)
	if err != nil {
		return nil, authDomain.NewUpstreamAuthError("login request failed", 0, "", err)
	}
	if !resp.IsSuccess() {
		return nil, authDomain.NewUpstreamAuthError("unexpected status", resp.StatusCode, resp.Text(), nil)
	}

	raw, err := authDomain.DecodeRawObject(resp.Body)
	if err != nil {
		// A success body may be the bare token, so only its shape is reported.
		reason := fmt.Sprintf("response is not a JSON object (%d bytes, content type %q)", len(resp.Body), resp.ContentType)
		return nil, authDomain.NewUpstreamAuthError(reason, resp.StatusCode, "", nil)
	}
	return raw, nil
}

func (s *sessionUseCase) checkCredentials(entityID string) error {
	var missing []string
	if s.client.BaseURL() == "" {
		missing = append(missing, "SG_BASE_URL")
	}
	if s.config.SGUserName == "" {
		missing = append(missing, "SG_USER_NAME")
	}
	if s.config.SGPassword == "" {
		missing = append(missing, "SG_PASSWORD")
	}
	if entityID == "" {
		missing = append(missing, "entidad_id")
	}
	if len(missing) == 0 {
		return nil
	}
	return authDomain.NewUpstreamAuthError(
		"missing "+strings.Join(missing, ", "), 0, "", apperrors.ErrConfiguration,
	)
}

// NewSessionUseCase creates a SessionUseCase. cfg.SGPassword must hold the plain secret.
func NewSessionUseCase(
	cfg *config.Config,
	client SGClient,
	cache TokenCache,
	signer authService.DigestSigner,
	opts ...Option,
) SessionUseCase {
	s := &sessionUseCase{
		config: cfg,
		client: client,
		cache:  cache,
		signer: signer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
