package httpin

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/inbound"
)

type Handlers struct {
	status inbound.StatusUseCase
	audit  inbound.AuditUseCase
	log    *zap.Logger
}

func NewHandlers(status inbound.StatusUseCase, audit inbound.AuditUseCase, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{status: status, audit: audit, log: log}
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) orderStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	q := r.URL.Query()
	report, err := h.status.Check(r.Context(), domain.StatusQuery{
		Order: q.Get("order"),
		Email: q.Get("email"),
	})
	if err != nil {
		status, body := errorFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("status check failed", zap.Error(err))
		}
		writeError(w, r, status, body)
		return
	}

	if wantsHTML(r) {
		writeHTML(w, "status", newStatusVM(report), http.StatusOK)
		return
	}
	writeJSON(w, report, http.StatusOK)
}

// ConfigErrorHandler answers every request with the configuration error.
// Used when the service starts without the settings it needs to do a lookup.
func ConfigErrorHandler(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		status, body := errorFor(err)
		writeError(w, r, status, body)
	})
}
