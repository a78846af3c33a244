package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"shopbot/internal/catalog"
	ordercontroller "shopbot/internal/order/controller"
	"shopbot/internal/session"
)

// NewRouter assembles the full HTTP surface: the web-app API plus the
// Telegram webhook. webhookPath carries the bot token, so it is mounted
// as-is rather than under /api.
func NewRouter(
	catalogCtrl *catalog.Controller,
	orderCtrl *ordercontroller.Controller,
	sessionCtrl *session.Controller,
	webhookPath string,
	webhook http.HandlerFunc,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogCtrl.HandleGetProducts)
		r.Post("/admin/products", catalogCtrl.HandleAdminSaveProducts)

		r.Post("/order", orderCtrl.HandleCreateOrder)
		r.Post("/notify-manager", orderCtrl.HandleNotifyManager)

		r.Get("/user/{userID}", sessionCtrl.HandleGetUser)
		r.Post("/cart/{userID}", sessionCtrl.HandleSaveCart)
	})

	if webhookPath != "" {
		r.Post(webhookPath, webhook)
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"OK","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			path := r.URL.Path
			if strings.HasPrefix(path, "/bot") {
				path = "/bot***"
			}
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
