package catalog

import (
	"encoding/json"
	"net/http"

	"shopbot/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	repo    Repository
	adminID int64
	logger  *zap.Logger
}

func NewController(repo Repository, adminID int64, logger *zap.Logger) *Controller {
	return &Controller{
		repo:    repo,
		adminID: adminID,
		logger:  logger,
	}
}

func (c *Controller) HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	catalog, err := c.repo.Load()
	if err != nil {
		c.logger.Error("loading catalog failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "STORAGE_ERROR",
			"message": "failed to load products",
		})
		return
	}
	c.writeJSON(w, http.StatusOK, catalog)
}

// HandleAdminSaveProducts replaces the whole catalog. The caller must present
// the configured admin identity; there is no session auth on this surface.
func (c *Controller) HandleAdminSaveProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req struct {
		AdminID  int64          `json:"adminId"`
		Products domain.Catalog `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid admin body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "request body must be valid JSON",
		})
		return
	}

	if req.AdminID == 0 || req.AdminID != c.adminID {
		logger.Warn("admin identity mismatch", zap.Int64("adminId", req.AdminID))
		c.writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "admin identity mismatch",
		})
		return
	}

	if err := c.repo.Save(&req.Products); err != nil {
		logger.Error("saving catalog failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "STORAGE_ERROR",
			"message": "failed to save products",
		})
		return
	}

	logger.Info("catalog updated",
		zap.Int("categories", len(req.Products.Categories)),
		zap.Int("products", len(req.Products.Products)))

	c.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
