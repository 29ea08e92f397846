package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/industry-overview/internal/dataset"
)

// SnapshotStats exposes the active dataset
type SnapshotStats interface {
	Current() (*dataset.Snapshot, error)
}

// ReloadTrigger reloads the dataset on demand
type ReloadTrigger interface {
	Trigger(ctx context.Context, trigger string) (*dataset.Snapshot, error)
}

// SystemHandlers serves process and dataset status
type SystemHandlers struct {
	snapshots SnapshotStats
	reloader  ReloadTrigger
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates the system handlers
func NewSystemHandlers(snapshots SnapshotStats, reloader ReloadTrigger, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		snapshots: snapshots,
		reloader:  reloader,
		startedAt: time.Now(),
		log:       log.With().Str("handler", "system").Logger(),
	}
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status        string         `json:"status"`
	Dataset       *dataset.Stats `json:"dataset"`
	CPUPercent    float64        `json:"cpu_percent"`
	MemoryPercent float64        `json:"memory_percent"`
	Goroutines    int            `json:"goroutines"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Timestamp     string         `json:"timestamp"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()
	response := SystemStatusResponse{
		Status:        "healthy",
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Timestamp:     time.Now().Format(time.RFC3339),
	}

	snap, err := h.snapshots.Current()
	switch {
	case errors.Is(err, dataset.ErrNoDataset):
		response.Status = "degraded"
	case err != nil:
		h.log.Error().Err(err).Msg("Failed to read dataset status")
		response.Status = "degraded"
	default:
		stats := snap.Stats()
		response.Dataset = &stats
	}

	writeJSON(w, http.StatusOK, response, h.log)
}

// HandleTriggerReload handles POST /api/system/reload
func (h *SystemHandlers) HandleTriggerReload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		http.Error(w, "Reload not available", http.StatusServiceUnavailable)
		return
	}

	snap, err := h.reloader.Trigger(r.Context(), "manual")
	if err != nil {
		h.log.Error().Err(err).Msg("Manual dataset reload failed")
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"status":  "error",
			"message": err.Error(),
		}, h.log)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"dataset": snap.Stats(),
	}, h.log)
}

// getSystemStats calculates CPU and RAM usage percentages.
// The 100ms CPU sample keeps the status call fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}
