// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/sky-shelf/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A path served under another method answers 404 like an unknown path, so
// the API never reports 405.
//
// Requests that do match a route after all (chi may fall through here for
// sub-routers) are handed back to the router.
func CheckHTTPMethod(router chi.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}
		routeNotFound(w, r)
	}
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, "no route for "+r.Method+" "+r.URL.Path, http.StatusNotFound)
}
