// Package usecase implements the calls proxied to SG on behalf of internal clients.
package usecase

import (
	"context"

	"github.com/maasoft/sg-gateway/internal/sgclient"
	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
)

// SessionProvider supplies the Authorization header of an SG entity.
type SessionProvider interface {
	AuthHeaders(ctx context.Context, entityID string) (map[string]string, error)
}

// SGClient sends requests to the SG API.
type SGClient interface {
	Do(ctx context.Context, method, path string, headers map[string]string, body any) (*sgclient.Response, error)
}

// ProxyUseCase forwards payloads to the configured SG endpoints. SG error
// responses are returned as *domain.UpstreamProxyError with status and body intact.
type ProxyUseCase interface {
	// CreateCVU forwards payload to the CVU endpoint.
	CreateCVU(ctx context.Context, entityID string, payload any) (any, error)

	// StartTransfer forwards payload to the transfer endpoint.
	StartTransfer(ctx context.Context, entityID string, payload any) (any, error)
}

// UserUseCase manages SG users.
type UserUseCase interface {
	// LookupByCUIT searches a user by CUIT. A 404 from SG is a normal "not found" result.
	LookupByCUIT(ctx context.Context, entityID, cuit string) (*sgproxyDomain.UserLookup, error)

	// LookupRaw returns SG's answer to the CUIT search untouched, whatever its status.
	LookupRaw(ctx context.Context, entityID, cuit string) (*sgproxyDomain.RawResponse, error)

	// Create registers a user unless one already exists for the CUIT.
	Create(
		ctx context.Context,
		entityID string,
		input *sgproxyDomain.CreateUserInput,
	) (*sgproxyDomain.CreateUserOutput, error)
}
