package events

import (
	"time"

	"github.com/rs/zerolog"
)

// Manager stamps, logs and publishes events
type Manager struct {
	bus *Bus
	log zerolog.Logger
}

// NewManager creates a new event manager
func NewManager(bus *Bus, log zerolog.Logger) *Manager {
	return &Manager{
		bus: bus,
		log: log.With().Str("service", "events").Logger(),
	}
}

// Emit publishes data as an event of data's type
func (m *Manager) Emit(module string, data EventData) {
	event := &Event{
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Module:    module,
		Data:      data,
	}

	m.log.Info().
		Str("event_type", string(event.Type)).
		Str("module", module).
		Msg("Event emitted")
	m.bus.Publish(event)
}

// EmitError emits an error event
func (m *Manager) EmitError(module string, err error, context string) {
	m.Emit(module, &ErrorEventData{Error: err.Error(), Context: context})
}
