package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/maasoft/sg-gateway/internal/auth/service"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
	"github.com/maasoft/sg-gateway/internal/httputil"
)

// ErrInboundTokenNotConfigured is returned while AUTH_TOKEN is empty: no caller can be accepted.
var ErrInboundTokenNotConfigured = apperrors.Wrap(apperrors.ErrConfiguration, "AUTH_TOKEN not defined")

// InboundTokenMiddleware only lets through requests presenting the static
// token SG was given for its callbacks.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
//
// Error handling:
//   - Missing, malformed or wrong token → 401 Unauthorized
//   - AUTH_TOKEN not configured → 500 Internal Server Error
//
// The presented token is never logged.
func InboundTokenMiddleware(
	tokenService authService.TokenService,
	expectedToken string,
	logger *slog.Logger,
) gin.HandlerFunc {
	if expectedToken == "" {
		logger.Warn("AUTH_TOKEN not defined, notifications will be refused")
	} else {
		logger.Info("inbound token configured",
			slog.String("fingerprint", authService.Fingerprint(tokenService.HashToken(expectedToken))))
	}

	return func(c *gin.Context) {
		if expectedToken == "" {
			httputil.HandleErrorGin(c, ErrInboundTokenNotConfigured, logger)
			c.Abort()
			return
		}

		plainToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("inbound authentication failed: missing or malformed authorization header",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !tokenService.CompareToken(plainToken, expectedToken) {
			logger.Warn("inbound authentication failed: invalid token",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// bearerToken extracts the token of a "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
