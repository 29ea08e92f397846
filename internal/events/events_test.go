package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_EmitDelivers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	manager := NewManager(bus, zerolog.Nop())

	received := make([]*Event, 0)
	unsubscribe := bus.Subscribe(DatasetReloaded, func(e *Event) {
		received = append(received, e)
	})

	manager.Emit("dataset", &DatasetReloadedData{Version: "v1", MetricRows: 3})
	manager.Emit("dataset", &ReloadFailedData{Error: "boom"})

	require.Len(t, received, 1)
	assert.Equal(t, DatasetReloaded, received[0].Type)
	assert.Equal(t, "dataset", received[0].Module)
	assert.False(t, received[0].Timestamp.IsZero())

	data, ok := received[0].Data.(*DatasetReloadedData)
	require.True(t, ok)
	assert.Equal(t, "v1", data.Version)

	unsubscribe()
	manager.Emit("dataset", &DatasetReloadedData{Version: "v2"})
	assert.Len(t, received, 1)
}

func TestManager_EmitError(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	manager := NewManager(bus, zerolog.Nop())

	var got *Event
	bus.Subscribe(ErrorOccurred, func(e *Event) { got = e })
	manager.EmitError("scheduler", errors.New("disk gone"), "reload")

	require.NotNil(t, got)
	assert.Equal(t, &ErrorEventData{Error: "disk gone", Context: "reload"}, got.Data)
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	in := &Event{Type: DatasetReloadFailed, Module: "dataset", Data: &ReloadFailedData{Source: "file://data", Error: "missing column"}}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"DATASET_RELOAD_FAILED"`)

	var out Event
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.Data, out.Data)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"NOPE","data":{}}`), &out))
}
