package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	allocation "warehouse-cloud/internal/allocation/domain"

	allocationapp "warehouse-cloud/internal/allocation/application"
)

// Handler provides the slot suggestion endpoint.
type Handler struct {
	service *allocationapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *allocationapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("allocation handler: nil service")
	}
	return &Handler{service: service}, nil
}

// SuggestRequest asks for the best slot for a weight.
type SuggestRequest struct {
	WeightKg float64 `json:"weight_kg"`
}

// SuggestResponse carries the chosen slot.
type SuggestResponse struct {
	LocationID   string  `json:"location_id"`
	LocationCode string  `json:"location_code"`
	Row          string  `json:"row"`
	Bay          string  `json:"bay"`
	Level        string  `json:"level"`
	MaxWeightKg  float64 `json:"max_weight_kg"`
	CurrentKg    float64 `json:"current_weight_kg"`
}

// ServeHTTP handles POST /api/v1/allocations/suggest.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req SuggestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	chosen, err := h.service.Suggest(r.Context(), req.WeightKg)
	if errors.Is(err, allocation.ErrNonPositiveWeight) {
		http.Error(w, "weight_kg must be positive", http.StatusBadRequest)
		return
	}
	if errors.Is(err, allocation.ErrUnknownTier) {
		http.Error(w, "location references an unconfigured tier", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if chosen == nil {
		http.Error(w, "no viable location", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SuggestResponse{
		LocationID:   chosen.ID,
		LocationCode: chosen.Code,
		Row:          chosen.Row,
		Bay:          chosen.Bay,
		Level:        chosen.Level,
		MaxWeightKg:  chosen.MaxWeightKg,
		CurrentKg:    chosen.CurrentWeight,
	})
}
