package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	authHTTP "github.com/maasoft/sg-gateway/internal/auth/http"
	authService "github.com/maasoft/sg-gateway/internal/auth/service"
	authMocks "github.com/maasoft/sg-gateway/internal/auth/usecase/mocks"
	"github.com/maasoft/sg-gateway/internal/config"
	"github.com/maasoft/sg-gateway/internal/metrics"
	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
	notificationHTTP "github.com/maasoft/sg-gateway/internal/notification/http"
	notificationMocks "github.com/maasoft/sg-gateway/internal/notification/usecase/mocks"
	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
	sgproxyHTTP "github.com/maasoft/sg-gateway/internal/sgproxy/http"
	sgproxyMocks "github.com/maasoft/sg-gateway/internal/sgproxy/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger)
}

type routerMocks struct {
	session      *authMocks.MockSessionUseCase
	proxy        *sgproxyMocks.MockProxyUseCase
	user         *sgproxyMocks.MockUserUseCase
	notification *notificationMocks.MockNotificationUseCase
}

// setupFullRouter wires every handler on mocked use cases.
func setupFullRouter(t *testing.T, cfg *config.Config) (*Server, routerMocks) {
	t.Helper()

	server := createTestServer()
	m := routerMocks{
		session:      &authMocks.MockSessionUseCase{},
		proxy:        &sgproxyMocks.MockProxyUseCase{},
		user:         &sgproxyMocks.MockUserUseCase{},
		notification: &notificationMocks.MockNotificationUseCase{},
	}

	server.SetupRouter(
		t.Context(),
		cfg,
		Handlers{
			Session:      authHTTP.NewSessionHandler(m.session, server.logger),
			Proxy:        sgproxyHTTP.NewProxyHandler(m.proxy, server.logger),
			User:         sgproxyHTTP.NewUserHandler(m.user, server.logger),
			Notification: notificationHTTP.NewNotificationHandler(m.notification, server.logger),
		},
		authService.NewTokenService(),
		nil,
		"",
	)

	return server, m
}

func testConfig() *config.Config {
	return &config.Config{
		InboundAuthToken:                     "inbound-secret",
		RateLimitNotificationsEnabled:        true,
		RateLimitNotificationsRequestsPerSec: 100,
		RateLimitNotificationsBurst:          100,
	}
}

func serve(handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	handler.ServeHTTP(w, req)
	return w
}

// TestHealthHandler tests the health check endpoint handler.
func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestStatusHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/status", nil)

	server.statusHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

// TestReadinessHandler_NotReady_NilDB tests the readiness endpoint when DB is nil.
func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

func TestReadinessHandler_DatabasePing(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		db, mockDB, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectPing()

		server := NewServer(db, "localhost", 8080, slog.New(slog.NewTextHandler(io.Discard, nil)))
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, w.Body.String())
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("PingFails", func(t *testing.T) {
		db, mockDB, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectPing().WillReturnError(assert.AnError)

		server := NewServer(db, "localhost", 8080, slog.New(slog.NewTextHandler(io.Discard, nil)))
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
	})
}

// TestCustomLoggerMiddleware tests the custom logging middleware.
func TestCustomLoggerMiddleware(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/v1/sg/usuarios/:cuit/raw", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := serve(router, http.MethodGet, "/v1/sg/usuarios/20123456789/raw?entidad_id=ENT", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(logs.String()), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "/v1/sg/usuarios/:cuit/raw", entry["route"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
	assert.NotContains(t, logs.String(), "20123456789")
}

func TestCustomLoggerMiddleware_ServerErrorLoggedAsError(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
	})

	serve(router, http.MethodGet, "/boom", "", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(logs.String()), &entry))
	assert.Equal(t, "ERROR", entry["level"])
}

// TestRecoveryMiddleware tests Gin's built-in recovery middleware.
func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := serve(router, http.MethodGet, "/panic", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig())

	w := serve(server.GetHandler(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = serve(server.GetHandler(), http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(server.GetHandler(), http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig())

	w := serve(server.GetHandler(), http.MethodGet, "/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_NoMetricsEndpoint(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig())

	w := serve(server.GetHandler(), http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SGRoutes(t *testing.T) {
	server, m := setupFullRouter(t, testConfig())
	handler := server.GetHandler()

	t.Run("AuthCache", func(t *testing.T) {
		m.session.On("CacheStatus", mock.Anything, "ENT-9").
			Return(authDomain.CacheStatus{EntityID: "ENT-9"}, nil).Once()

		w := serve(handler, http.MethodGet, "/v1/sg/auth/cache?entidad_id=ENT-9", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CreateCVU", func(t *testing.T) {
		m.proxy.On("CreateCVU", mock.Anything, "", mock.Anything).
			Return(map[string]any{"cvu": "0000003100000000000001"}, nil).Once()

		w := serve(handler, http.MethodPost, "/v1/sg/cvu", `{"idUsuario":"U-1"}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"cvu":"0000003100000000000001"}`, w.Body.String())
	})

	t.Run("StartTransfer", func(t *testing.T) {
		m.proxy.On("StartTransfer", mock.Anything, "", mock.Anything).
			Return(map[string]any{"ok": true}, nil).Once()

		w := serve(handler, http.MethodPost, "/v1/sg/transferencias", `{"importe":10}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LookupByCUIT", func(t *testing.T) {
		m.user.On("LookupByCUIT", mock.Anything, "", "20-12345678-9").
			Return(&sgproxyDomain.UserLookup{}, nil).Once()

		w := serve(handler, http.MethodGet, "/v1/sg/usuarios/20-12345678-9/by-cuit", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"existe":false,"idUsuario":null,"cuentas":[],"rawCount":0}`, w.Body.String())
	})

	t.Run("LookupRaw", func(t *testing.T) {
		m.user.On("LookupRaw", mock.Anything, "", "20123456789").
			Return(&sgproxyDomain.RawResponse{StatusCode: http.StatusNotFound, ContentType: "text/plain", Body: "nada"}, nil).
			Once()

		w := serve(handler, http.MethodGet, "/v1/sg/usuarios/20123456789/raw", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	m.session.AssertExpectations(t)
	m.proxy.AssertExpectations(t)
	m.user.AssertExpectations(t)
}

func TestRouter_NotificationRoute(t *testing.T) {
	const body = `{
		"idTransaccion": "TX-1",
		"idTipoTransaccion": 2,
		"numeroCuenta": "000123",
		"importe": 10.5,
		"fechaOperacion": "2025-03-01T10:30:00",
		"CVU": "0000003100000000000001"
	}`

	t.Run("MissingToken", func(t *testing.T) {
		server, m := setupFullRouter(t, testConfig())

		w := serve(server.GetHandler(), http.MethodPost, "/transacciones", body, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.notification.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("WrongToken", func(t *testing.T) {
		server, m := setupFullRouter(t, testConfig())

		w := serve(server.GetHandler(), http.MethodPost, "/transacciones", body,
			map[string]string{"Authorization": "Bearer nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.notification.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("Recorded", func(t *testing.T) {
		server, m := setupFullRouter(t, testConfig())
		m.notification.On("Record", mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Return(notificationDomain.StatusRecorded, nil).Once()

		w := serve(server.GetHandler(), http.MethodPost, "/transacciones", body,
			map[string]string{"Authorization": "Bearer inbound-secret"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		m.notification.AssertExpectations(t)
	})

	t.Run("RateLimited", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimitNotificationsRequestsPerSec = 0.001
		cfg.RateLimitNotificationsBurst = 1
		server, m := setupFullRouter(t, cfg)
		m.notification.On("Record", mock.Anything, mock.Anything).
			Return(notificationDomain.StatusDuplicate, nil).Once()

		headers := map[string]string{"Authorization": "Bearer inbound-secret"}
		w := serve(server.GetHandler(), http.MethodPost, "/transacciones", body, headers)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"duplicado"}`, w.Body.String())

		w = serve(server.GetHandler(), http.MethodPost, "/transacciones", body, headers)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("TokenNotConfigured", func(t *testing.T) {
		cfg := testConfig()
		cfg.InboundAuthToken = ""
		server, _ := setupFullRouter(t, cfg)

		w := serve(server.GetHandler(), http.MethodPost, "/transacciones", body,
			map[string]string{"Authorization": "Bearer anything"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()

	err := server.Start(t.Context())

	assert.Error(t, err)
}

// TestServer_ShutdownGracefully tests graceful server shutdown.
func TestServer_ShutdownGracefully(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig())
	server.server.Addr = "127.0.0.1:0"

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestMetricsServer_WithoutProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 8081, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
