package lambdain

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpin "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/http"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

func event(rawQuery string) events.APIGatewayV2HTTPRequest {
	ev := events.APIGatewayV2HTTPRequest{
		RawPath:        "/apps/order-status",
		RawQueryString: rawQuery,
		Headers:        map[string]string{"host": "deucces.example.com", "accept": "application/json"},
	}
	ev.RequestContext.HTTP.Method = http.MethodGet
	ev.RequestContext.HTTP.SourceIP = "203.0.113.7"
	return ev
}

func TestNewRequest_RebuildsURL(t *testing.T) {
	req, err := NewRequest(context.Background(), event("order=1043&signature=abc"))
	require.NoError(t, err)

	assert.Equal(t, "https://deucces.example.com/apps/order-status?order=1043&signature=abc", req.URL.String())
	assert.Equal(t, "deucces.example.com", req.Host)
	assert.Equal(t, "1043", req.URL.Query().Get("order"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "203.0.113.7", req.RemoteAddr)
}

func TestNewRequest_Base64Body(t *testing.T) {
	ev := event("")
	ev.RequestContext.HTTP.Method = http.MethodPost
	ev.Body = "aGVsbG8="
	ev.IsBase64Encoded = true

	req, err := NewRequest(context.Background(), ev)
	require.NoError(t, err)

	b, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestHandle_RoundTrip(t *testing.T) {
	var gotQuery string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		http.SetCookie(w, &http.Cookie{Name: "seen", Value: "1"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	res, err := New(h).Handle(context.Background(), event("order=%231043&email=a%40b.co"))
	require.NoError(t, err)

	assert.Equal(t, "order=%231043&email=a%40b.co", gotQuery)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, "application/json", res.Headers["Content-Type"])
	assert.Equal(t, []string{"seen=1"}, res.Cookies)
	assert.JSONEq(t, `{"ok":true}`, res.Body)
	assert.False(t, res.IsBase64Encoded)
}

func TestHandle_ConfigError(t *testing.T) {
	h := httpin.ConfigErrorHandler(&domain.ConfigError{Key: "SHOPIFY_ADMIN_ACCESS_TOKEN"})

	res, err := New(h).Handle(context.Background(), event("order=1043"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.Body), &body))
	assert.Equal(t, "configuration error", body["error"])
	assert.Equal(t, "SHOPIFY_ADMIN_ACCESS_TOKEN is required", body["message"])
}

func TestHandle_BinaryBodyIsBase64(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0x00})
	})

	res, err := New(h).Handle(context.Background(), event(""))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.IsBase64Encoded)
	assert.Equal(t, "//4A", res.Body)
}
