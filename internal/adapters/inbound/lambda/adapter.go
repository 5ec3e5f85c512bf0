// Package lambdain runs the HTTP router behind an API Gateway v2 (HTTP API)
// Lambda integration.
package lambdain

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"

	httpin "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/http"
)

type Adapter struct {
	handler http.Handler
}

func New(h http.Handler) *Adapter {
	return &Adapter{handler: h}
}

// Handle is the lambda.Start entrypoint.
func (a *Adapter) Handle(ctx context.Context, ev events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := NewRequest(ctx, ev)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	buf := httpin.NewResponseBuffer()
	a.handler.ServeHTTP(buf, req)
	return NewResponse(buf), nil
}

// NewRequest rebuilds an absolute request URL from the host header and the
// raw query string, so signature verification sees the parameters exactly as
// they were sent.
func NewRequest(ctx context.Context, ev events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	method := ev.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}
	path := ev.RawPath
	if path == "" {
		path = ev.RequestContext.HTTP.Path
	}
	if path == "" {
		path = "/"
	}

	host := headerValue(ev.Headers, "host")
	if host == "" {
		host = ev.RequestContext.DomainName
	}
	if host == "" {
		host = "localhost"
	}

	u, err := url.Parse("https://" + host + path)
	if err != nil {
		return nil, fmt.Errorf("parse request url: %w", err)
	}
	u.RawQuery = ev.RawQueryString

	var body io.Reader = http.NoBody
	if ev.Body != "" {
		if ev.IsBase64Encoded {
			b, err := base64.StdEncoding.DecodeString(ev.Body)
			if err != nil {
				return nil, fmt.Errorf("decode body: %w", err)
			}
			body = bytes.NewReader(b)
		} else {
			body = strings.NewReader(ev.Body)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range ev.Headers {
		req.Header.Set(k, v)
	}
	for _, c := range ev.Cookies {
		req.Header.Add("Cookie", c)
	}
	req.Host = host
	req.RequestURI = u.RequestURI()
	if ip := ev.RequestContext.HTTP.SourceIP; ip != "" {
		req.RemoteAddr = ip
	}
	return req, nil
}

func NewResponse(buf *httpin.ResponseBuffer) events.APIGatewayV2HTTPResponse {
	out := events.APIGatewayV2HTTPResponse{
		StatusCode: buf.Status(),
		Headers:    make(map[string]string, len(buf.Header())),
	}
	for k, vs := range buf.Header() {
		if http.CanonicalHeaderKey(k) == "Set-Cookie" {
			out.Cookies = append(out.Cookies, vs...)
			continue
		}
		out.Headers[k] = strings.Join(vs, ",")
	}

	b := buf.Body()
	if utf8.Valid(b) {
		out.Body = string(b)
	} else {
		out.Body = base64.StdEncoding.EncodeToString(b)
		out.IsBase64Encoded = true
	}
	return out
}

func headerValue(h map[string]string, key string) string {
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
