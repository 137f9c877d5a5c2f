package usecase

import (
	"context"
	"net/http"

	"github.com/maasoft/sg-gateway/internal/config"
	"github.com/maasoft/sg-gateway/internal/sgclient"
	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
)

// proxyUseCase implements ProxyUseCase.
type proxyUseCase struct {
	config   *config.Config
	client   SGClient
	sessions SessionProvider
}

func (p *proxyUseCase) CreateCVU(ctx context.Context, entityID string, payload any) (any, error) {
	return p.post(ctx, p.config.SGEndpointCVU, entityID, payload)
}

func (p *proxyUseCase) StartTransfer(ctx context.Context, entityID string, payload any) (any, error) {
	return p.post(ctx, p.config.SGEndpointTransfer, entityID, payload)
}

// post sends payload with a valid token. A 2xx body that is not JSON is
// returned as {"ok": true, "raw": text}.
func (p *proxyUseCase) post(ctx context.Context, path, entityID string, payload any) (any, error) {
	headers, err := p.sessions.AuthHeaders(ctx, entityID)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(ctx, http.MethodPost, path, headers, payload)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}
	if !resp.IsJSON() {
		return map[string]any{"ok": true, "raw": resp.Text()}, nil
	}
	return resp.Detail(), nil
}

func upstreamError(resp *sgclient.Response) error {
	return sgproxyDomain.NewUpstreamProxyError(resp.StatusCode, resp.Detail())
}

// NewProxyUseCase creates a new ProxyUseCase.
func NewProxyUseCase(cfg *config.Config, client SGClient, sessions SessionProvider) ProxyUseCase {
	return &proxyUseCase{
		config:   cfg,
		client:   client,
		sessions: sessions,
	}
}
