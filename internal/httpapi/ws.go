package httpapi

import (
	"log"
	"net/http"
)

// handleDevEvents upgrades to a websocket and streams hub events until the
// client goes away. Write-only from the server's point of view.
func (s *Server) handleDevEvents(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "events_disabled", "event feed not available")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		return
	}

	events, cancel := s.hub.Subscribe()
	s.metrics.EventClients.Inc()

	done := make(chan struct{})
	go func() {
		// Drain reads so close frames and pings are processed.
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		cancel()
		s.metrics.EventClients.Dec()
		_ = conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("dev event write failed: %v", err)
				return
			}
		}
	}
}
