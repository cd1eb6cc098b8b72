package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	type author struct {
		Handle string `json:"handle"`
	}
	type post struct {
		URI    string `json:"uri"`
		Author author `json:"author"`
	}

	tests := []struct {
		name   string
		data   any
		status int
		want   string
	}{
		{name: "map", data: map[string]string{"collection": "likes"}, status: http.StatusOK, want: `{"collection":"likes"}`},
		{name: "nil", data: nil, status: http.StatusOK, want: `null`},
		{name: "empty struct", data: struct{}{}, status: http.StatusOK, want: `{}`},
		{name: "slice", data: []int{1, 2, 3}, status: http.StatusOK, want: `[1,2,3]`},
		{
			name:   "nested",
			data:   post{URI: "at://did:plc:a/app.bsky.feed.post/1", Author: author{Handle: "alice.bsky.social"}},
			status: http.StatusCreated,
			want:   `{"uri":"at://did:plc:a/app.bsky.feed.post/1","author":{"handle":"alice.bsky.social"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSON(rec, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"response could not be encoded"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, "collection not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `{"error":"collection not found"}`, rec.Body.String())
}
