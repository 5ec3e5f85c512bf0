package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/auth"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/metrics"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/inbound"
)

type RouterConfig struct {
	Status inbound.StatusUseCase
	// Audit backs the admin page; nil disables it.
	Audit      inbound.AuditUseCase
	Auth       *auth.Authenticator
	AdminToken string
	UIEnabled  bool
	Log        *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	metrics.Register()

	h := NewHandlers(cfg.Status, cfg.Audit, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(requireSignature(cfg.Auth, log.Named("auth")))
		r.Get("/status", h.orderStatus)
		r.Get("/apps/order-status", h.orderStatus)
	})

	if cfg.Audit != nil && cfg.AdminToken != "" {
		r.With(requireAdminToken(cfg.AdminToken)).Get("/admin", h.admin)
	}

	// The lookup page cannot sign its own requests, so it only exists when
	// signatures are not enforced.
	if cfg.UIEnabled && !cfg.Auth.Enabled() {
		ui := NewUI(cfg.Status, log.Named("ui"))
		r.Get("/", ui.Index)
		r.Get("/ui/status", ui.StatusSSE)
	}

	return r
}
