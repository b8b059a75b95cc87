package middlewares

import (
	"bytes"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

// BrotliMiddleware compresses successful responses for clients advertising
// brotli support. Transcript listings compress well, audio uploads never pass
// through here (request bodies are untouched).
func BrotliMiddleware(r *ghttp.Request) {
	if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
		r.Middleware.Next()
		return
	}

	r.Middleware.Next()

	if r.Response.Status != 200 || r.Response.BufferLength() == 0 {
		return
	}

	originalBody := r.Response.Buffer()
	var compressedBody bytes.Buffer
	writer := brotli.NewWriterLevel(&compressedBody, brotli.DefaultCompression)
	if _, err := writer.Write(originalBody); err != nil {
		g.Log().Errorf(r.Context(), "brotli write failed: %v", err)
		return
	}
	if err := writer.Close(); err != nil {
		g.Log().Errorf(r.Context(), "brotli close failed: %v", err)
		return
	}

	r.Response.Header().Set("Content-Encoding", "br")
	r.Response.Header().Set("Vary", "Accept-Encoding")
	r.Response.ClearBuffer()
	r.Response.Write(compressedBody.Bytes())
}
