package http

import (
	"io"
	"net/http"
)

// getServerVersion answers with the bare version string, e.g. "1.4.0".
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := io.WriteString(w, h.services.AppInfoService.GetAppVersion(r.Context())); err != nil {
		h.logger.Err(err).Str("func", "Handler.getServerVersion").Msg("error writing version")
	}
}
