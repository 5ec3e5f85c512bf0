package httpin

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/web"
)

// errorBody is the JSON error shape shared by every endpoint.
type errorBody struct {
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

type stepVM struct {
	Stage   domain.Stage
	Label   string
	Done    bool
	Current bool
}

type statusVM struct {
	OrderName string
	Message   string
	DaysSince int
	CreatedAt string
	Steps     []stepVM
}

func newStatusVM(rep domain.StatusReport) statusVM {
	current := rep.Stage.Index()
	steps := make([]stepVM, 0, len(domain.Stages))
	for i, st := range domain.Stages {
		steps = append(steps, stepVM{
			Stage:   st,
			Label:   string(st),
			Done:    i <= current,
			Current: i == current,
		})
	}
	return statusVM{
		OrderName: rep.OrderName,
		Message:   rep.Message,
		DaysSince: rep.DaysSince,
		CreatedAt: rep.CreatedAt.Format("Jan 2, 2006"),
		Steps:     steps,
	}
}

// errorFor maps a lookup failure onto a status code and body.
func errorFor(err error) (int, errorBody) {
	var (
		cfgErr *domain.ConfigError
		upErr  *domain.UpstreamError
	)
	switch {
	case errors.Is(err, domain.ErrMissingOrder):
		return http.StatusBadRequest, errorBody{
			Error: domain.ErrMissingOrder.Error(),
			Hint:  "pass the order number as ?order=1043",
		}
	case errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusBadRequest, errorBody{
			Error: domain.ErrInvalidOrder.Error(),
			Hint:  "order numbers contain only letters, digits, '-', '_' and '.'",
		}
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, errorBody{Error: domain.ErrInvalidEmail.Error()}
	case domain.IsAuthError(err):
		return http.StatusUnauthorized, errorBody{Error: "unauthorized", Reason: authReason(err)}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, errorBody{
			Error: domain.ErrOrderNotFound.Error(),
			Hint:  "check the order number and the email used at checkout",
		}
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, errorBody{Error: "configuration error", Message: cfgErr.Error()}
	case errors.As(err, &upErr):
		return http.StatusInternalServerError, errorBody{Error: "upstream error", Message: upErr.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal error"}
	}
}

func authReason(err error) string {
	if errors.Is(err, domain.ErrMissingSignature) {
		return domain.ErrMissingSignature.Error()
	}
	return domain.ErrInvalidSignature.Error()
}

// wantsHTML applies ?format=json|html first, then the Accept header. JSON
// wins ties and is the default.
func wantsHTML(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
	case "html":
		return true
	case "json":
		return false
	}
	htmlQ, jsonQ := acceptQuality(r.Header.Get("Accept"))
	return htmlQ > 0 && htmlQ > jsonQ
}

// acceptQuality returns the best q-value the Accept header grants to
// text/html and to application/json, wildcards included.
func acceptQuality(accept string) (htmlQ, jsonQ float64) {
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q = f
			}
		}
		switch mt {
		case "text/html":
			htmlQ = max(htmlQ, q)
		case "application/json":
			jsonQ = max(jsonQ, q)
		case "text/*":
			htmlQ = max(htmlQ, q*0.99)
		case "application/*":
			jsonQ = max(jsonQ, q*0.99)
		case "*/*":
			htmlQ = max(htmlQ, q*0.98)
			jsonQ = max(jsonQ, q*0.98)
		}
	}
	return htmlQ, jsonQ
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeHTML renders into a buffer first so a template failure still yields a
// clean 500.
func writeHTML(w http.ResponseWriter, name string, data any, status int) {
	var buf bytes.Buffer
	if err := web.Templates().ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, body errorBody) {
	if wantsHTML(r) {
		writeHTML(w, "error", body, status)
		return
	}
	writeJSON(w, body, status)
}

func renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := web.Templates().ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
