// Package http provides HTTP handlers for the SG proxy endpoints.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/maasoft/sg-gateway/internal/auth/http"
	"github.com/maasoft/sg-gateway/internal/httputil"
	sgproxyUseCase "github.com/maasoft/sg-gateway/internal/sgproxy/usecase"
)

// ProxyHandler forwards arbitrary JSON bodies to SG endpoints.
type ProxyHandler struct {
	proxyUseCase sgproxyUseCase.ProxyUseCase
	logger       *slog.Logger
}

// NewProxyHandler creates a new proxy handler with required dependencies.
func NewProxyHandler(proxyUseCase sgproxyUseCase.ProxyUseCase, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		proxyUseCase: proxyUseCase,
		logger:       logger,
	}
}

// CreateCVUHandler forwards the body to the configured CVU endpoint.
// POST /v1/sg/cvu?entidad_id=...
func (h *ProxyHandler) CreateCVUHandler(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	result, err := h.proxyUseCase.CreateCVU(c.Request.Context(), c.Query(authHTTP.EntityQueryParam), payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StartTransferHandler forwards the body to the configured transfer endpoint.
// POST /v1/sg/transferencias?entidad_id=...
func (h *ProxyHandler) StartTransferHandler(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	result, err := h.proxyUseCase.StartTransfer(c.Request.Context(), c.Query(authHTTP.EntityQueryParam), payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}

// bindPayload decodes any JSON value, keeping numbers verbatim. The body is
// forwarded as is, so nothing beyond syntax is checked.
func (h *ProxyHandler) bindPayload(c *gin.Context) (any, bool) {
	data, err := c.GetRawData()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		httputil.HandleBadRequestGin(c, errors.New("request body is required"), h.logger)
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid JSON body: %w", err), h.logger)
		return nil, false
	}
	return payload, true
}
