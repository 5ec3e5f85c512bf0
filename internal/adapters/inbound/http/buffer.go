package httpin

import (
	"bytes"
	"net/http"
)

// ResponseBuffer is an in-memory http.ResponseWriter for running the router
// outside a server, as the Lambda adapter and the check command do.
type ResponseBuffer struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{header: make(http.Header)}
}

func (b *ResponseBuffer) Header() http.Header { return b.header }

// WriteHeader keeps the first status only, like a real connection.
func (b *ResponseBuffer) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *ResponseBuffer) Write(p []byte) (int, error) {
	b.WriteHeader(http.StatusOK)
	return b.body.Write(p)
}

// Flush is a no-op; SSE handlers flush after each event.
func (b *ResponseBuffer) Flush() {}

// Status is 200 when the handler wrote nothing.
func (b *ResponseBuffer) Status() int {
	if !b.wroteHeader {
		return http.StatusOK
	}
	return b.status
}

func (b *ResponseBuffer) Body() []byte { return b.body.Bytes() }
