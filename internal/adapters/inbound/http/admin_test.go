package httpin

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/memory"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/auth"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/service"
)

func newAdminRouter(t *testing.T, orders ...string) http.Handler {
	t.Helper()
	if len(orders) == 0 {
		orders = []string{"1043"}
	}
	audit := service.NewAuditService(memory.NewAuditRepository(10))
	svc := service.NewStatusService(
		&stubLookup{found: true, order: packingOrder()}, nil,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithRecorder(audit),
	)
	for _, o := range orders {
		_, err := svc.Check(context.Background(), domainQuery(o))
		require.NoError(t, err)
	}

	return NewRouter(RouterConfig{
		Status:     svc,
		Audit:      audit,
		Auth:       auth.NewAuthenticator(""),
		AdminToken: "s3cret",
	})
}

func TestAdmin_RequiresToken(t *testing.T) {
	h := newAdminRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, "/admin", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, "/admin?token=nope", nil).Code)
}

func TestAdmin_ListsChecks(t *testing.T) {
	h := newAdminRouter(t)

	rec := do(t, h, "/admin", http.Header{"X-Admin-Token": {"s3cret"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total: <b>1</b>")
	assert.Contains(t, body, "#1043")
	assert.Contains(t, body, "packing")

	rec = do(t, h, "/admin?token=s3cret&page=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "page 1 of 1")
}

func TestAdmin_PageBeyondEndShowsLastPage(t *testing.T) {
	h := newAdminRouter(t, "1043", "1044", "1045")

	rec := do(t, h, "/admin?token=s3cret&size=2&page=999", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "page 2 of 2")
	assert.Equal(t, 1, strings.Count(body, "<td>packing</td>"))
	assert.NotContains(t, body, "No checks recorded yet.")
}

func TestAdmin_NotMountedWithoutToken(t *testing.T) {
	h := NewRouter(RouterConfig{
		Status: service.NewStatusService(&stubLookup{}, nil),
		Audit:  service.NewAuditService(memory.NewAuditRepository(1)),
	})

	assert.Equal(t, http.StatusNotFound, do(t, h, "/admin", nil).Code)
}

func domainQuery(order string) domain.StatusQuery {
	return domain.StatusQuery{Order: order}
}
