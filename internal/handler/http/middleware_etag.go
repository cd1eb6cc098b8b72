package http

import (
	"bytes"
	"net/http"

	"github.com/MKhiriev/sky-shelf/internal/utils"
)

// bufferedWriter holds back the response so its body can be hashed before
// anything reaches the client.
type bufferedWriter struct {
	http.ResponseWriter

	status int
	body   bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// withETag signs successful responses with an HMAC entity tag and answers
// 304 Not Modified when the client already holds that version.
func withETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bw := &bufferedWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		if bw.status == 0 {
			bw.status = http.StatusOK
		}
		if bw.status != http.StatusOK {
			w.WriteHeader(bw.status)
			w.Write(bw.body.Bytes())
			return
		}

		etag := utils.ETag(bw.body.Bytes())
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write(bw.body.Bytes())
	})
}
