// Package handlers provides HTTP handlers for the dashboard views.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/industry-overview/internal/dataset"
	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/exporter"
	"github.com/aristath/industry-overview/internal/modules/catalog"
	"github.com/aristath/industry-overview/internal/modules/dashboard"
)

const (
	contentTypeMsgpack = "application/msgpack"
	contentTypeXLSX    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *dashboard.Service
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *dashboard.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleGetOptions handles GET /api/options
func (h *Handler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, opts)
}

// HandleGetCatalog handles GET /api/catalog
func (h *Handler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	cat := h.service.Catalog()
	h.writeResponse(w, r, http.StatusOK, map[string]interface{}{
		"metrics": cat.Metrics(),
		"trends":  cat.Trends(),
	})
}

// HandleGetOverview handles GET /api/overview
func (h *Handler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.viewRequest(w, r)
	if !ok {
		return
	}
	res, err := h.service.Overview(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, res)
}

// HandleGetSummary handles GET /api/summary
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.viewRequest(w, r)
	if !ok {
		return
	}
	summary, err := h.service.Summary(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, summary)
}

// HandleGetGeography handles GET /api/geography
func (h *Handler) HandleGetGeography(w http.ResponseWriter, r *http.Request) {
	req, ok := h.viewRequest(w, r)
	if !ok {
		return
	}
	res, err := h.service.Geography(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, res)
}

// HandleGetDisclosures handles GET /api/disclosures
func (h *Handler) HandleGetDisclosures(w http.ResponseWriter, r *http.Request) {
	req, ok := h.viewRequest(w, r)
	if !ok {
		return
	}
	res, err := h.service.Disclosures(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, res)
}

// HandleGetLeaders handles GET /api/leaders
func (h *Handler) HandleGetLeaders(w http.ResponseWriter, r *http.Request) {
	req, ok := h.viewRequest(w, r)
	if !ok {
		return
	}
	res, err := h.service.Leaders(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, res)
}

// HandleGetPerformance handles GET /api/performance
func (h *Handler) HandleGetPerformance(w http.ResponseWriter, r *http.Request) {
	req, ok := h.metricRequest(w, r)
	if !ok {
		return
	}
	view, err := h.service.Performance(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, view)
}

// HandleGetTrends handles GET /api/trends
func (h *Handler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	req, ok := h.metricRequest(w, r)
	if !ok {
		return
	}
	view, err := h.service.Trends(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, http.StatusOK, view)
}

// HandleExportPerformance handles GET /api/performance/export.xlsx
func (h *Handler) HandleExportPerformance(w http.ResponseWriter, r *http.Request) {
	req, ok := h.metricRequest(w, r)
	if !ok {
		return
	}
	wb, err := h.service.Workbook(req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wb.Metric.Key+".xlsx"))
	if err := exporter.WriteXLSX(w, wb); err != nil {
		h.log.Error().Err(err).Str("metric", wb.Metric.Key).Msg("Failed to write workbook")
	}
}

func (h *Handler) viewRequest(w http.ResponseWriter, r *http.Request) (domain.ViewRequest, bool) {
	req, err := parseViewRequest(r)
	if err != nil {
		h.log.Debug().Err(err).Str("query", r.URL.RawQuery).Msg("Rejected view request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return domain.ViewRequest{}, false
	}
	return req, true
}

func (h *Handler) metricRequest(w http.ResponseWriter, r *http.Request) (domain.ViewRequest, bool) {
	req, ok := h.viewRequest(w, r)
	if !ok {
		return req, false
	}
	if req.MetricKey == "" {
		http.Error(w, "metric parameter is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dataset.ErrNoDataset):
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
	case errors.Is(err, catalog.ErrUnknownMetric):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error().Err(err).Msg("Failed to compute view")
		http.Error(w, "Failed to compute view", http.StatusInternalServerError)
	}
}

// writeResponse wraps data with metadata and encodes it as msgpack when the
// client asks for it, JSON otherwise.
func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	response := map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		h.writeMsgpack(w, status, response)
		return
	}
	h.writeJSON(w, status, response)
}

func (h *Handler) writeMsgpack(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeMsgpack)
	w.WriteHeader(status)

	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode msgpack response")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
