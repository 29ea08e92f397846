package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all dashboard routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/options", h.HandleGetOptions)
	r.Get("/catalog", h.HandleGetCatalog)

	r.Get("/overview", h.HandleGetOverview)
	r.Get("/summary", h.HandleGetSummary)
	r.Get("/geography", h.HandleGetGeography)
	r.Get("/disclosures", h.HandleGetDisclosures)
	r.Get("/leaders", h.HandleGetLeaders)

	// Metric views
	r.Get("/performance", h.HandleGetPerformance)
	r.Get("/performance/export.xlsx", h.HandleExportPerformance)
	r.Get("/trends", h.HandleGetTrends)
}
