package httpin

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

type adminVM struct {
	Page     int
	PageSize int
	Total    int
	Pages    int
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
	Token    string
	Summary  domain.AuditSummary
	Rows     []adminCheckRow
}

type adminCheckRow struct {
	CheckedAt     string
	OrderInput    string
	OrderName     string
	Outcome       string
	Stage         string
	DaysSince     int
	EmailProvided bool
}

func (h *Handlers) admin(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	size := intQuery(r, "size", 20)

	summary, err := h.audit.Summary(r.Context())
	if err != nil {
		h.log.Error("admin summary", zap.Error(err))
		http.Error(w, "admin error", http.StatusInternalServerError)
		return
	}

	// Clamp before fetching so an out-of-range page shows the last one.
	if size <= 0 || size > 200 {
		size = 20
	}
	pages := (summary.Total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	checks, total, err := h.audit.ListPage(r.Context(), page, size)
	if err != nil {
		h.log.Error("admin list", zap.Error(err))
		http.Error(w, "admin error", http.StatusInternalServerError)
		return
	}

	vm := adminVM{
		Page:     page,
		PageSize: size,
		Total:    total,
		Pages:    pages,
		HasPrev:  page > 1,
		HasNext:  page < pages,
		PrevPage: page - 1,
		NextPage: page + 1,
		Token:    r.URL.Query().Get("token"),
		Summary:  summary,
	}

	for _, c := range checks {
		stage := string(c.Stage)
		if stage == "" {
			stage = "-"
		}
		vm.Rows = append(vm.Rows, adminCheckRow{
			CheckedAt:     c.CheckedAt.Format("2006-01-02 15:04:05"),
			OrderInput:    c.OrderInput,
			OrderName:     c.OrderName,
			Outcome:       string(c.Outcome),
			Stage:         stage,
			DaysSince:     c.DaysSince,
			EmailProvided: c.EmailProvided,
		})
	}

	w.Header().Set("Cache-Control", "no-store")
	writeHTML(w, "admin", vm, http.StatusOK)
}

func intQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
