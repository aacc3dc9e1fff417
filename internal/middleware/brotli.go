package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliMinLength keeps tiny JSON payloads uncompressed; the header overhead
// is not worth it below this size.
const brotliMinLength = 1024

// brWriter buffers the response until it crosses brotliMinLength, then
// commits to compression. Responses that finish below the threshold are
// written through as-is.
type brWriter struct {
	gin.ResponseWriter
	br      *brotli.Writer
	pending []byte
	started bool
}

func (w *brWriter) Write(data []byte) (int, error) {
	w.pending = append(w.pending, data...)
	if len(w.pending) < brotliMinLength {
		return len(data), nil
	}

	if !w.started {
		w.started = true
		w.ResponseWriter.Header().Set("Content-Encoding", "br")
		w.ResponseWriter.Header().Del("Content-Length")
	}
	n, err := w.br.Write(w.pending)
	w.pending = w.pending[:0]
	return n, err
}

func (w *brWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush drains the buffer uncompressed and forwards the flush. Streaming
// responses never reach the compression threshold path after this.
func (w *brWriter) Flush() {
	_ = w.passthrough()
	w.ResponseWriter.Flush()
}

// passthrough writes any buffered bytes uncompressed.
func (w *brWriter) passthrough() error {
	if len(w.pending) == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.pending)
	w.pending = w.pending[:0]
	return err
}

// Brotli compresses responses above brotliMinLength for clients that accept
// it. SSE and WebSocket traffic passes through untouched.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isStreaming(c) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		w := &brWriter{
			ResponseWriter: c.Writer,
			br:             brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression),
		}
		c.Writer = w

		defer func() {
			if w.started {
				// Compression committed: flush what is left through the
				// encoder and close the stream.
				if len(w.pending) > 0 {
					_, _ = w.br.Write(w.pending)
					w.pending = nil
				}
				w.br.Close()
				return
			}
			if err := w.passthrough(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

// isStreaming reports whether the request uses a protocol that buffered
// compression would break.
func isStreaming(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		return true
	}
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
