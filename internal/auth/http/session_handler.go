// Package http provides HTTP handlers for SG session diagnostics.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maasoft/sg-gateway/internal/auth/http/dto"
	authUseCase "github.com/maasoft/sg-gateway/internal/auth/usecase"
	"github.com/maasoft/sg-gateway/internal/httputil"
)

// EntityQueryParam optionally overrides the default SG entity on a request.
const EntityQueryParam = "entidad_id"

// SessionHandler exposes the SG session state for smoke tests and support.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// TestLoginHandler forces a login against SG and returns a redacted summary.
// GET /v1/sg/auth/test?entidad_id=...
func (h *SessionHandler) TestLoginHandler(c *gin.Context) {
	summary, err := h.sessionUseCase.LoginDebug(c.Request.Context(), c.Query(EntityQueryParam))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDebugSummaryToResponse(summary))
}

// EnsureTokenHandler obtains a token if the cached one is missing or stale and
// returns the resulting cache state.
// GET /v1/sg/auth/ensure?entidad_id=...
func (h *SessionHandler) EnsureTokenHandler(c *gin.Context) {
	status, err := h.sessionUseCase.EnsureToken(c.Request.Context(), c.Query(EntityQueryParam))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCacheStatusToResponse(status))
}

// CacheStatusHandler returns the cache state without contacting SG.
// GET /v1/sg/auth/cache?entidad_id=...
func (h *SessionHandler) CacheStatusHandler(c *gin.Context) {
	status, err := h.sessionUseCase.CacheStatus(c.Request.Context(), c.Query(EntityQueryParam))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCacheStatusToResponse(status))
}
