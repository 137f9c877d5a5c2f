package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/maasoft/sg-gateway/internal/auth/http"
	"github.com/maasoft/sg-gateway/internal/httputil"
	"github.com/maasoft/sg-gateway/internal/sgproxy/http/dto"
	sgproxyUseCase "github.com/maasoft/sg-gateway/internal/sgproxy/usecase"
	customValidation "github.com/maasoft/sg-gateway/internal/validation"
)

// UserHandler handles SG user lookup and registration.
type UserHandler struct {
	userUseCase sgproxyUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase sgproxyUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// LookupByCUITHandler reports whether a user exists in SG for a CUIT.
// GET /v1/sg/usuarios/:cuit/by-cuit?entidad_id=...
func (h *UserHandler) LookupByCUITHandler(c *gin.Context) {
	lookup, err := h.userUseCase.LookupByCUIT(
		c.Request.Context(),
		c.Query(authHTTP.EntityQueryParam),
		c.Param("cuit"),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserLookupToResponse(lookup))
}

// LookupRawHandler echoes the SG response of a search by CUIT, whatever its status.
// GET /v1/sg/usuarios/:cuit/raw?entidad_id=...
func (h *UserHandler) LookupRawHandler(c *gin.Context) {
	raw, err := h.userUseCase.LookupRaw(
		c.Request.Context(),
		c.Query(authHTTP.EntityQueryParam),
		c.Param("cuit"),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRawResponseToResponse(raw))
}

// CreateHandler registers a user in SG unless one already exists for the CUIT.
// POST /v1/sg/usuarios?entidad_id=...
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.userUseCase.Create(c.Request.Context(), c.Query(authHTTP.EntityQueryParam), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCreateUserOutputToResponse(output))
}
