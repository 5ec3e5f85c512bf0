package httpin

import (
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/inbound"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/web"
)

// UI is a small lookup page that patches the status card over SSE.
type UI struct {
	status inbound.StatusUseCase
	log    *zap.Logger
}

func NewUI(status inbound.StatusUseCase, log *zap.Logger) *UI {
	if log == nil {
		log = zap.NewNop()
	}
	return &UI{status: status, log: log}
}

type uiSignals struct {
	Order string `json:"order"`
	Email string `json:"email"`
}

func (u *UI) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS(), "index.html")
}

func (u *UI) StatusSSE(w http.ResponseWriter, r *http.Request) {
	signals := &uiSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElements(`<p id="status">Bad request: invalid signals</p>`)
		return
	}

	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElements(`<p id="status">Looking up your order...</p>`)

	ctx := r.Context()
	start := time.Now()
	report, err := u.status.Check(ctx, domain.StatusQuery{Order: signals.Order, Email: signals.Email})

	var (
		frag  string
		ferr  error
		label = "Done"
	)
	if err != nil {
		status, body := errorFor(err)
		if status >= http.StatusInternalServerError {
			u.log.Error("ui status check failed", zap.Error(err))
		}
		label = http.StatusText(status)
		frag, ferr = renderFragment("error-card", body)
	} else {
		frag, ferr = renderFragment("card", newStatusVM(report))
	}
	if ferr != nil {
		u.log.Error("ui render", zap.Error(ferr))
		_ = sse.PatchElements(`<p id="status">Internal error</p>`)
		return
	}

	u.log.Debug("ui lookup", zap.Duration("took", time.Since(start)))
	_ = sse.PatchElements(`<p id="status">` + label + `</p>`)
	_ = sse.PatchElements(frag)
}
