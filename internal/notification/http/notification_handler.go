// Package http provides the HTTP handler of the transaction notification webhook.
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maasoft/sg-gateway/internal/httputil"
	"github.com/maasoft/sg-gateway/internal/notification/http/dto"
	notificationUseCase "github.com/maasoft/sg-gateway/internal/notification/usecase"
	customValidation "github.com/maasoft/sg-gateway/internal/validation"
)

// internalErrorMessage is the only detail SG gets when a notification cannot be stored.
const internalErrorMessage = "Error interno"

// NotificationHandler receives the transaction notifications pushed by SG.
type NotificationHandler struct {
	notificationUseCase notificationUseCase.NotificationUseCase
	logger              *slog.Logger
}

// NewNotificationHandler creates a new notification handler with required dependencies.
func NewNotificationHandler(
	notificationUseCase notificationUseCase.NotificationUseCase,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

// ReceiveHandler stores a transaction notification once.
// POST /transacciones - Requires the inbound bearer token.
// Returns 200 with {"status":"ok"} or {"status":"duplicado"}.
func (h *NotificationHandler) ReceiveHandler(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.TransactionNotificationRequest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid notification body: %w", err), h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var rawPayload bytes.Buffer
	if err := json.Compact(&rawPayload, data); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	tx, err := req.ToDomain(rawPayload.Bytes())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status, err := h.notificationUseCase.Record(c.Request.Context(), tx)
	if err != nil {
		h.logger.Error("failed to process transaction",
			slog.String("transaction_id", tx.ID),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   "internal_error",
			Message: internalErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordStatusToResponse(status))
}
