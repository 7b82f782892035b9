package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"warehouse-cloud/internal/audit"
	"warehouse-cloud/internal/auth"
	goodsin "warehouse-cloud/internal/goodsin/domain"
	locations "warehouse-cloud/internal/locations/domain"
	pickingapp "warehouse-cloud/internal/picking/application"
	picking "warehouse-cloud/internal/picking/domain"
)

// Handler provides picking HTTP endpoints.
type Handler struct {
	service     *pickingapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *pickingapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("picking handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// CreateRequest opens a pick for a stored receipt.
type CreateRequest struct {
	ReceiptID  string `json:"receipt_id"`
	Department string `json:"department"`
}

// ServeHTTP routes /api/v1/picks requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/picks")
	rest = strings.Trim(rest, "/")

	switch {
	case rest == "" && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case rest == "" && r.Method == http.MethodGet:
		h.handleList(w, r)
	default:
		parts := strings.Split(rest, "/")
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			h.handleGet(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "complete" && r.Method == http.MethodPost:
			h.handleComplete(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req CreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	order, err := h.service.CreatePick(r.Context(), req.ReceiptID, req.Department)
	if err != nil {
		switch {
		case errors.Is(err, goodsin.ErrNotFound):
			http.Error(w, "receipt not found", http.StatusNotFound)
		case errors.Is(err, goodsin.ErrNotStored):
			http.Error(w, "receipt is not stored", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(order)

	h.logAudit(r, "pick.create", order.ID, order.LocationID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	status := picking.PickStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = picking.StatusOpen
	}
	list, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, picking.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(order)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.CompletePick(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, picking.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, picking.ErrNotOpen):
			http.Error(w, "pick is not open", http.StatusConflict)
		case errors.Is(err, locations.ErrWeightConflict):
			http.Error(w, "weight release conflict", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(order)

	h.logAudit(r, "pick.complete", order.ID, order.LocationID)
}

func (h *Handler) logAudit(r *http.Request, action, pickID, locationID string) {
	if h.auditLogger == nil {
		return
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		TenantID:     tenantID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "pick_order",
		ResourceID:   pickID,
		LocationID:   locationID,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
