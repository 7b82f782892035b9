package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"warehouse-cloud/internal/audit"
	"warehouse-cloud/internal/auth"
	locationsapp "warehouse-cloud/internal/locations/application"
	locations "warehouse-cloud/internal/locations/domain"
)

// Handler provides slot master data HTTP endpoints.
type Handler struct {
	service     *locationsapp.Service
	repairer    *locationsapp.Repairer
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *locationsapp.Service, repairer *locationsapp.Repairer, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("locations handler: nil service")
	}
	return &Handler{service: service, repairer: repairer, auditLogger: auditLogger}, nil
}

// ServeHTTP routes /api/v1/locations requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/locations")
	rest = strings.Trim(rest, "/")

	switch {
	case rest == "" && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case rest == "" && r.Method == http.MethodGet:
		h.handleList(w, r)
	case rest == "repair" && r.Method == http.MethodPost:
		h.handleRepair(w, r)
	default:
		parts := strings.Split(rest, "/")
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			h.handleGet(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "verify" && r.Method == http.MethodPost:
			h.handleVerify(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "availability" && r.Method == http.MethodPost:
			h.handleAvailability(w, r, parts[0])
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

	var req locationsapp.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	location, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, locations.ErrDuplicateCode) {
			http.Error(w, "location code already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(location)

	h.logAudit(r, "location.create", location.ID, location.Code)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	location, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, locations.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(location)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request, id string) {
	location, err := h.service.Verify(r.Context(), id)
	if err != nil {
		if errors.Is(err, locations.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(location)

	h.logAudit(r, "location.verify", location.ID, location.Code)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req availabilityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	location, err := h.service.SetAvailability(r.Context(), id, req.Available)
	if err != nil {
		if errors.Is(err, locations.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(location)

	h.logAudit(r, "location.availability", location.ID, location.Code)
}

func (h *Handler) handleRepair(w http.ResponseWriter, r *http.Request) {
	if h.repairer == nil {
		http.Error(w, "repair not configured", http.StatusServiceUnavailable)
		return
	}
	report, err := h.repairer.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)

	h.logAudit(r, "location.repair", "", "")
}

func (h *Handler) logAudit(r *http.Request, action, locationID, code string) {
	if h.auditLogger == nil {
		return
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return
	}
	meta, _ := json.Marshal(map[string]any{"code": code})
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		TenantID:     tenantID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "location",
		ResourceID:   locationID,
		LocationID:   locationID,
		Metadata:     meta,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
