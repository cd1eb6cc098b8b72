package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/internal/validators"
)

func TestWithTraceID(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetTraceIDFromContext(r.Context())
	})

	t.Run("keeps the incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(traceIDHeader, "trace-1")
		rec := httptest.NewRecorder()

		h.withTraceID(next).ServeHTTP(rec, req)

		assert.Equal(t, "trace-1", seen)
		assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()

		h.withTraceID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(traceIDHeader))
	})
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-2")
	h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "trace-2", line["trace_id"])
	assert.Equal(t, "/api/version", line["uri"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, len("short and stout"), line["size"])
}

func TestWithGZip(t *testing.T) {
	payload := bytes.Repeat([]byte("liked post "), 100)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	})

	t.Run("compresses when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rec := httptest.NewRecorder()

		withGZip(next).ServeHTTP(rec, req)

		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("plain when not accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()

		withGZip(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, rec.Body.Bytes())
	})

	t.Run("no content stays uncompressed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()

		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("decompresses request bodies", func(t *testing.T) {
		var body bytes.Buffer
		zw := gzip.NewWriter(&body)
		zw.Write([]byte(`{"collection":"pins"}`))
		require.NoError(t, zw.Close())

		req := httptest.NewRequest(http.MethodPut, "/", &body)
		req.Header.Set("Content-Encoding", "gzip")

		var got []byte
		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = io.ReadAll(r.Body)
			r.Body.Close()
		})).ServeHTTP(httptest.NewRecorder(), req)

		assert.JSONEq(t, `{"collection":"pins"}`, string(got))
	})

	t.Run("rejects broken gzip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", bytes.NewReader([]byte("not gzip")))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()

		withGZip(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWithETag_PassesErrorsThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "boom", http.StatusBadGateway)
	})
	rec := httptest.NewRecorder()

	withETag(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Header().Get("ETag"))
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
}

func TestWithETag_ChangesWithBody(t *testing.T) {
	body := "first"
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	rec := httptest.NewRecorder()
	withETag(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	first := rec.Header().Get("ETag")

	body = "second"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", first)
	rec = httptest.NewRecorder()
	withETag(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "second", rec.Body.String())
	assert.NotEqual(t, first, rec.Header().Get("ETag"))
}

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/tab", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/tab", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tab", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidPageParam, http.StatusBadRequest},
		{validators.ErrQueryTooLong, http.StatusBadRequest},
		{validators.ErrUnknownCollection, http.StatusNotFound},
		{service.ErrNoData, http.StatusNotFound},
		{service.ErrNotAuthenticated, http.StatusUnauthorized},
		{service.ErrFetchSuperseded, http.StatusConflict},
		{fmt.Errorf("getBookmarks: %w", &adapter.XRPCError{Status: http.StatusTooManyRequests, Name: "RateLimitExceeded"}), http.StatusTooManyRequests},
		{fmt.Errorf("fetch: %w", adapter.ErrInternalServerError), http.StatusBadGateway},
		{fmt.Errorf("load: %w", store.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
