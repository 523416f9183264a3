package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig represents timeout middleware configuration
type TimeoutConfig struct {
	Duration time.Duration
}

// DefaultTimeoutConfig returns default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Duration: 30 * time.Second,
	}
}

// timeoutWriter buffers everything the handler writes so the timeout branch
// and the handler goroutine never touch the real response writer at the same
// time. Exactly one side commits: either the buffered response is flushed
// when the handler finishes, or the 504 is written and later handler output
// is dropped.
type timeoutWriter struct {
	gin.ResponseWriter

	mu       sync.Mutex
	header   http.Header
	body     bytes.Buffer
	code     int
	timedOut bool
}

func newTimeoutWriter(w gin.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{
		ResponseWriter: w,
		header:         make(http.Header),
		code:           http.StatusOK,
	}
}

func (w *timeoutWriter) Header() http.Header {
	return w.header
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.code = code
}

// WriteHeaderNow is a no-op; the header reaches the wire on flush.
func (w *timeoutWriter) WriteHeaderNow() {}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	return w.body.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *timeoutWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return http.StatusGatewayTimeout
	}
	return w.code
}

// flush commits the buffered response. Called only after the handler
// goroutine is done.
func (w *timeoutWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}

	dst := w.ResponseWriter.Header()
	for k, v := range w.header {
		dst[k] = v
	}
	w.ResponseWriter.WriteHeader(w.code)
	w.ResponseWriter.Write(w.body.Bytes())
}

// timeout commits the 504 and discards whatever the handler writes from now
// on.
func (w *timeoutWriter) timeout(payload []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timedOut = true

	w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	w.ResponseWriter.Write(payload)
}

// Timeout adds request timeout
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		w := newTimeoutWriter(c.Writer)
		c.Writer = w

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
			w.flush()
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				payload, _ := json.Marshal(ErrorResponse{
					Code:    http.StatusGatewayTimeout,
					Message: "request timeout",
					TraceID: c.GetString(ContextRequestID),
				})
				w.timeout(payload)
			}
		}
	}
}
