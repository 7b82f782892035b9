package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	dashboardapp "warehouse-cloud/internal/dashboard/application"
	"warehouse-cloud/internal/dashboard/interfaces"
	"warehouse-cloud/internal/observability/metrics"
)

// Handler provides dashboard and export HTTP endpoints.
type Handler struct {
	service *dashboardapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *dashboardapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("dashboard handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes dashboard requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/dashboard/summary":
		h.handleSummary(w, r)
	case "/api/v1/exports/occupancy.xlsx":
		h.handleOccupancyXLSX(w, r)
	case "/api/v1/exports/location-labels.pdf":
		h.handleLabelsPDF(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.BuildSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

func (h *Handler) handleOccupancyXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	summary, err := h.service.BuildSummary(r.Context())
	if err != nil {
		metrics.ObserveExport("xlsx", metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := interfaces.BuildOccupancyXLSX(summary)
	if err != nil {
		metrics.ObserveExport("xlsx", metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport("xlsx", metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="occupancy.xlsx"`)
	_, _ = w.Write(data)
}

func (h *Handler) handleLabelsPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	labels, err := h.service.ListLabels(r.Context())
	if err != nil {
		metrics.ObserveExport("pdf", metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := interfaces.BuildLocationLabelsPDF(labels)
	if err != nil {
		metrics.ObserveExport("pdf", metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport("pdf", metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="location-labels.pdf"`)
	_, _ = w.Write(data)
}
