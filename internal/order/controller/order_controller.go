package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"shopbot/internal/dto"
	apperrors "shopbot/internal/errors"
	"shopbot/internal/order/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProcessOrderUseCase interface {
	Process(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error)
}

type Controller struct {
	useCase ProcessOrderUseCase
	logger  *zap.Logger
}

func NewController(useCase ProcessOrderUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleCreateOrder is the HTTP order path. It runs through the same use case
// as the web-app channel: same validation, same counter, same notifications.
func (c *Controller) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	c.processOrder(w, r, "api")
}

// HandleNotifyManager is the legacy backup path kept for old web clients. It
// is an alias of HandleCreateOrder rather than the validation-free bypass it
// used to be.
func (c *Controller) HandleNotifyManager(w http.ResponseWriter, r *http.Request) {
	c.processOrder(w, r, "notify-manager")
}

func (c *Controller) processOrder(w http.ResponseWriter, r *http.Request, route string) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("route", route))

	var req dto.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.UserID == 0 {
		c.writeValidationError(w, "userId is required", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId must be a non-zero integer",
		})
		return
	}

	result, err := c.useCase.Process(r.Context(), usecase.ProcessOrderCommand{
		UserID:         req.UserID,
		ChatID:         req.ChatID,
		Lines:          dto.CartToDomain(req.Cart),
		Contact:        req.UserData.ToDomain(),
		DeliveryMethod: req.DeliveryMethod,
	})
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeValidationError(w, ve.Message, ve.Details...)
			return
		}
		logger.Error("order processing failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "STORAGE_ERROR",
			"message": "failed to process order",
		})
		return
	}

	logger.Info("order accepted",
		zap.String("orderId", string(result.OrderID)),
		zap.String("status", result.Status))

	c.writeJSON(w, http.StatusOK, dto.OrderResponse{
		Success:     true,
		OrderNumber: string(result.OrderID),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
