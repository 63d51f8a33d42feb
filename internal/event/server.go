package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
)

// subscriberBuffer bounds how far a slow client may fall behind before it
// starts losing events.
const subscriberBuffer = 32

// Server streams bus events to clients as server-sent events. A client may
// narrow the stream with ?types=toast.shown,onboarding.completed.
type Server struct {
	bus *eventbus.Bus
}

func NewServer(bus *eventbus.Bus) *Server {
	return &Server{bus: bus}
}

func (s *Server) Register(r chi.Router) {
	r.Get("/events", s.StreamEvents)
}

func (s *Server) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	filter := parseTypeFilter(r.URL.Query().Get("types"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, ch := s.bus.Subscribe(subscriberBuffer)
	defer s.bus.Unsubscribe(id)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if len(filter) > 0 && !filter[ev.Type] {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				slog.Warn("failed to marshal event", "event_id", ev.ID, "error", err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Type, data)
			flusher.Flush()
		}
	}
}

func parseTypeFilter(raw string) map[eventbus.EventType]bool {
	if raw == "" {
		return nil
	}
	filter := make(map[eventbus.EventType]bool)
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			filter[eventbus.EventType(t)] = true
		}
	}
	return filter
}
