package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"warehouse-cloud/internal/audit"
	"warehouse-cloud/internal/auth"
	goodsinapp "warehouse-cloud/internal/goodsin/application"
	goodsin "warehouse-cloud/internal/goodsin/domain"
)

// Handler provides goods-in HTTP endpoints.
type Handler struct {
	service     *goodsinapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *goodsinapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("goods-in handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes /api/v1/goods-in requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/goods-in")
	rest = strings.Trim(rest, "/")

	switch {
	case rest == "" && r.Method == http.MethodPost:
		h.handleRegister(w, r)
	case rest == "" && r.Method == http.MethodGet:
		h.handleList(w, r)
	default:
		parts := strings.Split(rest, "/")
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			h.handleGet(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "store" && r.Method == http.MethodPost:
			h.handleStore(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req goodsinapp.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	receipt, err := h.service.RegisterArrival(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(receipt)

	h.logAudit(r, "goodsin.register", receipt.ID, "")
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	status := goodsin.ReceiptStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = goodsin.StatusPending
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
	receipt, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, goodsin.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(receipt)
}

func (h *Handler) handleStore(w http.ResponseWriter, r *http.Request, id string) {
	receipt, err := h.service.Store(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, goodsin.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, goodsin.ErrNotPending):
			http.Error(w, "receipt is not pending", http.StatusConflict)
		case errors.Is(err, goodsin.ErrNoViableSlot):
			http.Error(w, "no viable location", http.StatusConflict)
		case errors.Is(err, goodsin.ErrPlacementContention):
			http.Error(w, "placement contention, retry later", http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(receipt)

	h.logAudit(r, "goodsin.store", receipt.ID, receipt.LocationID)
}

func (h *Handler) logAudit(r *http.Request, action, receiptID, locationID string) {
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
		ResourceType: "goods_receipt",
		ResourceID:   receiptID,
		LocationID:   locationID,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
