package session

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shopbot/internal/domain"
	"shopbot/internal/dto"
	apperrors "shopbot/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Controller struct {
	store  *Store
	logger *zap.Logger
}

func NewController(store *Store, logger *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: logger,
	}
}

// HandleGetUser returns the saved contact profile for the web-app checkout
// form, or null when the user has none yet.
func (c *Controller) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid userId", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId must be an integer",
		})
		return
	}

	var userData *domain.ContactProfile
	if sess, ok := c.store.Get(userID); ok {
		userData = sess.Contact
	}

	c.writeJSON(w, http.StatusOK, map[string]*domain.ContactProfile{
		"userData": userData,
	})
}

func (c *Controller) HandleSaveCart(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid userId", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId must be an integer",
		})
		return
	}

	var req struct {
		Cart []dto.CartLineDTO `json:"cart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid cart body", zap.Int64("userId", userID), zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	c.store.SetCart(userID, dto.CartToDomain(req.Cart))
	c.logger.Debug("cart saved", zap.Int64("userId", userID), zap.Int("lines", len(req.Cart)))

	c.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
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
