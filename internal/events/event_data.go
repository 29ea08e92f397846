package events

import (
	"encoding/json"
	"fmt"
)

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// DatasetReloadedData describes a newly active dataset snapshot
type DatasetReloadedData struct {
	Version    string `json:"version"`
	Source     string `json:"source"`
	MetricRows int    `json:"metric_rows"`
	TopicRows  int    `json:"topic_rows"`
	LeaderRows int    `json:"leader_rows"`
	Trigger    string `json:"trigger"`
}

// EventType returns the event type for DatasetReloadedData
func (d *DatasetReloadedData) EventType() EventType {
	return DatasetReloaded
}

// ReloadFailedData describes a failed reload. The previous snapshot stays active.
type ReloadFailedData struct {
	Source  string `json:"source,omitempty"`
	Error   string `json:"error"`
	Trigger string `json:"trigger"`
}

// EventType returns the event type for ReloadFailedData
func (d *ReloadFailedData) EventType() EventType {
	return DatasetReloadFailed
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string `json:"error"`
	Context string `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// UnmarshalJSON decodes Data into the concrete type matching Type
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := &struct {
		Data json.RawMessage `json:"data"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if len(aux.Data) == 0 || string(aux.Data) == "null" {
		e.Data = nil
		return nil
	}

	var eventData EventData
	switch aux.Type {
	case DatasetReloaded:
		eventData = &DatasetReloadedData{}
	case DatasetReloadFailed:
		eventData = &ReloadFailedData{}
	case ErrorOccurred:
		eventData = &ErrorEventData{}
	default:
		return fmt.Errorf("unknown event type %q", aux.Type)
	}
	if err := json.Unmarshal(aux.Data, eventData); err != nil {
		return err
	}
	e.Data = eventData
	return nil
}
