package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// events streams the summary of every collection state change over a
// websocket. The current state of each collection is sent first.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Err(err).Str("func", "*Handler.events").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.services.Orchestrator.Subscribe()
	defer cancel()

	for _, c := range models.Collections {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err = conn.WriteJSON(h.services.Orchestrator.State(c).Summary()); err != nil {
			log.Err(err).Str("func", "*Handler.events").Msg("error writing initial state")
			return
		}
	}

	// the read loop only serves control frames and notices the client leaving
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			log.Debug().Msg("event stream client disconnected")
			return
		case state, ok := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err = conn.WriteJSON(state.Summary()); err != nil {
				log.Err(err).Str("func", "*Handler.events").Msg("error writing state change")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
