package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/industry-overview/internal/events"
)

const (
	eventBufferSize   = 32
	heartbeatInterval = 30 * time.Second
	writeTimeout      = 5 * time.Second
)

// streamedEventTypes are forwarded to dashboard clients.
var streamedEventTypes = []events.EventType{
	events.DatasetReloaded,
	events.DatasetReloadFailed,
	events.ErrorOccurred,
}

// EventsStreamHandler pushes dataset events to websocket clients so open
// dashboards can refetch after a reload.
type EventsStreamHandler struct {
	eventBus       *events.Bus
	originPatterns []string
	log            zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler
func NewEventsStreamHandler(eventBus *events.Bus, allowedOrigins []string, log zerolog.Logger) *EventsStreamHandler {
	patterns := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		// AcceptOptions matches hosts, not full origins
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			origin = u.Host
		}
		patterns = append(patterns, origin)
	}
	return &EventsStreamHandler{
		eventBus:       eventBus,
		originPatterns: patterns,
		log:            log.With().Str("component", "events_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/events/ws
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.eventBus == nil {
		http.Error(w, "Event stream not available", http.StatusServiceUnavailable)
		return
	}

	eventChan := make(chan *events.Event, eventBufferSize)
	handler := func(event *events.Event) {
		// Non-blocking send (drop if channel full)
		select {
		case eventChan <- event:
		default:
			h.log.Warn().
				Str("event_type", string(event.Type)).
				Msg("Event channel full, dropping event")
		}
	}
	// subscribe before the handshake completes so no event is missed
	for _, eventType := range streamedEventTypes {
		unsubscribe := h.eventBus.Subscribe(eventType, handler)
		defer unsubscribe()
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket connection")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// Clients only listen; CloseRead handles control frames and cancels ctx
	// when the client goes away.
	ctx := conn.CloseRead(r.Context())
	h.log.Info().Msg("Client connected to event stream")

	if err := h.write(ctx, conn, map[string]interface{}{
		"type":    "connected",
		"message": "Connected to event stream",
	}); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from event stream")
			conn.Close(websocket.StatusNormalClosure, "")
			return

		case event := <-eventChan:
			if err := h.write(ctx, conn, event); err != nil {
				return
			}

		case <-heartbeat.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Event stream heartbeat failed")
				return
			}
		}
	}
}

func (h *EventsStreamHandler) write(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, v); err != nil {
		h.log.Debug().Err(err).Msg("Failed to write to event stream")
		return err
	}
	return nil
}
