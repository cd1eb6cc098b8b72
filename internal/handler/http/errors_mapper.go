package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidPageParam: http.StatusBadRequest,
	ErrInvalidFlipParam: http.StatusBadRequest,
	ErrInvalidJSON:      http.StatusBadRequest,

	service.ErrUnknownCollection:     http.StatusNotFound,
	service.ErrNoData:                http.StatusNotFound,
	service.ErrNotAuthenticated:      http.StatusUnauthorized,
	service.ErrFetchSuperseded:       http.StatusConflict,
	service.ErrOrchestratorClosed:    http.StatusServiceUnavailable,
	service.ErrMalformedCache:        http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified: http.StatusBadRequest,

	validators.ErrUnknownCollection: http.StatusNotFound,
	validators.ErrQueryTooLong:      http.StatusBadRequest,
	validators.ErrInvalidAuthorDID:  http.StatusBadRequest,
	validators.ErrInvalidEmbedKind:  http.StatusBadRequest,
	validators.ErrInvalidPageIndex:  http.StatusBadRequest,
	validators.ErrEmptyIdentifier:   http.StatusBadRequest,
	validators.ErrEmptyPassword:     http.StatusBadRequest,

	adapter.ErrUnauthorized:        http.StatusUnauthorized,
	adapter.ErrExpiredToken:        http.StatusUnauthorized,
	adapter.ErrNoSession:           http.StatusUnauthorized,
	adapter.ErrForbidden:           http.StatusForbidden,
	adapter.ErrRateLimited:         http.StatusTooManyRequests,
	adapter.ErrBadRequest:          http.StatusBadGateway,
	adapter.ErrNotFound:            http.StatusBadGateway,
	adapter.ErrInternalServerError: http.StatusBadGateway,
	adapter.ErrUnexpectedStatus:    http.StatusBadGateway,

	store.ErrCacheEntryNotFound: http.StatusNotFound,
	store.ErrStorageUnavailable: http.StatusServiceUnavailable,
	store.ErrStoreClosed:        http.StatusServiceUnavailable,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
