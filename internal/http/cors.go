package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/maasoft/sg-gateway/internal/config"
)

// createCORSMiddleware returns nil unless CORS_ENABLED is set and at least one
// origin in CORS_ALLOW_ORIGINS is a valid http(s) origin. SG and the back
// office call the gateway server to server, so CORS is off by default.
func createCORSMiddleware(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.CORSEnabled {
		return nil
	}

	origins := parseOrigins(cfg.CORSAllowOrigins, logger)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but CORS_ALLOW_ORIGINS has no valid origin, CORS not applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	})
}

// parseOrigins splits a comma separated list and keeps the entries that are
// a bare scheme://host[:port] origin.
func parseOrigins(raw string, logger *slog.Logger) []string {
	var origins []string
	for part := range strings.SplitSeq(raw, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}
		if !isOrigin(origin) {
			logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

func isOrigin(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && u.Path == "" && u.RawQuery == ""
}
