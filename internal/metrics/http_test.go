package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("gw")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(t.Context())) })

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "gw"))
	router.GET("/v1/sg/usuarios/:cuit/raw", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 200})
	})
	router.POST("/transacciones", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error interno"})
	})

	for _, cuit := range []string{"20123456789", "27987654321"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sg/usuarios/"+cuit+"/raw", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/transacciones", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `gw_http_requests_total`,
		`method="GET".*path="/v1/sg/usuarios/:cuit/raw".*status_code="200"`, `2`)
	assertBizMetricLine(t, output, `gw_http_requests_total`,
		`method="POST".*path="/transacciones".*status_code="500"`, `1`)
	assertBizMetricLine(t, output, `gw_http_requests_total`,
		`path="unmatched".*status_code="404"`, `1`)
	assertBizMetricLine(t, output, `gw_http_requests_in_flight`, ``, `0`)
	assert.Contains(t, output, "gw_http_request_duration_seconds_bucket")
	assert.NotContains(t, output, "20123456789")
	assert.NotContains(t, output, "wp-login")
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RouteTemplate", input: "/v1/sg/usuarios/:cuit/by-cuit", expected: "/v1/sg/usuarios/:cuit/by-cuit"},
		{name: "StaticRoute", input: "/transacciones", expected: "/transacciones"},
		{name: "NoRoute", input: "", expected: "unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, routeLabel(tt.input))
		})
	}
}
