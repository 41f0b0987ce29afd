package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go_4_vocab_review/internal/config"
	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// HealthCheck は /health で呼ばれる疎通確認 (DBの ping など)。nil なら常に OK。
type HealthCheck func(ctx context.Context) error

// NewRouter はミドルウェアと /api/v1 以下のルートを設定したルーターを返します。
func NewRouter(logger *slog.Logger, cfg *config.Config, svc service.CompanionService, health HealthCheck) http.Handler {
	now := time.Now
	itemHandler := NewItemHandler(svc, now)
	reviewHandler := NewReviewHandler(svc, now)
	sessionHandler := NewSessionHandler(svc, now)
	adminHandler := NewAdminHandler(svc)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", itemHandler.ReportContent)
			r.Get("/", itemHandler.ListItems)
			r.Get("/{kind}/{content}", itemHandler.GetItem)
			r.Patch("/{kind}/{content}/active", itemHandler.SetActive)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/due", reviewHandler.DueItems)
			r.Post("/request", reviewHandler.RequestReview)
			r.Post("/outcome", reviewHandler.SubmitOutcome)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.StartSession)
			r.Get("/current", sessionHandler.CurrentSession)
			r.Post("/current/items/{kind}/{content}", sessionHandler.CompleteItem)
			r.Post("/current/end", sessionHandler.EndSession)
			r.Post("/current/mark-reviewed", sessionHandler.MarkReviewed)
		})

		r.Get("/stats", itemHandler.Stats)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/save", adminHandler.Save)
			r.Post("/reset", adminHandler.Reset)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if health != nil {
			if err := health(ctx); err != nil {
				middleware.GetLogger(ctx).Error("Health check failed", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
