package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/sky-shelf/internal/utils"
)

// compressResponses gzips JSON and plain text bodies for clients sending
// Accept-Encoding: gzip.
var compressResponses = middleware.Compress(gzip.DefaultCompression, "application/json", "text/plain")

// withGZip accepts gzip request bodies and compresses responses.
func withGZip(next http.Handler) http.Handler {
	return decompressRequest(compressResponses(next))
}

func decompressRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			utils.WriteError(w, "invalid gzip body", http.StatusBadRequest)
			return
		}
		r.Body = gzipBody{Reader: zr, zr: zr, raw: r.Body}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		next.ServeHTTP(w, r)
	})
}

type gzipBody struct {
	io.Reader
	zr  *gzip.Reader
	raw io.Closer
}

func (b gzipBody) Close() error {
	_ = b.zr.Close()
	return b.raw.Close()
}
