package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/notify"
	"github.com/fattoush-pos/api/internal/service"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/go-chi/chi/v5"
)

// TableStore defines the registry methods needed by table handlers.
// Satisfied by *store.TableStore; narrow interface for testability.
type TableStore interface {
	List() []model.Table
	Reserve(id int, name string) (model.Table, error)
	Release(id int) (model.Table, error)
}

// TableOrders defines the order-service methods the table endpoints expose.
// Satisfied by *service.OrderService.
type TableOrders interface {
	ActiveOrderByTable(tableID int) (model.Order, error)
	UpdateGuestCount(tableID int, count int32) (model.Order, error)
}

// TableHandler handles table registry endpoints.
type TableHandler struct {
	store  TableStore
	orders TableOrders
	bus    *notify.Bus
}

// NewTableHandler creates a new TableHandler. bus may be nil.
func NewTableHandler(store TableStore, orders TableOrders, bus *notify.Bus) *TableHandler {
	return &TableHandler{store: store, orders: orders, bus: bus}
}

// RegisterRoutes registers table endpoints on the given Chi router.
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/{id}/reserve", h.Reserve)
	r.Post("/{id}/release", h.Release)
	r.Get("/{id}/order", h.ActiveOrder)
	r.Patch("/{id}/guest-count", h.UpdateGuestCount)
}

// --- Request / Response types ---

type reserveRequest struct {
	Name string `json:"name"`
}

type guestCountRequest struct {
	GuestCount int32 `json:"guest_count"`
}

type tableResponse struct {
	ID              int    `json:"id"`
	Capacity        int32  `json:"capacity"`
	Status          string `json:"status"`
	ReservationName string `json:"reservation_name,omitempty"`
}

func toTableResponse(t model.Table) tableResponse {
	return tableResponse{
		ID:              t.ID,
		Capacity:        t.Capacity,
		Status:          t.Status,
		ReservationName: t.ReservationName,
	}
}

// --- Handlers ---

// List returns all tables.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables := h.store.List()
	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reserve marks an available table as reserved.
func (h *TableHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.tableID(w, r)
	if !ok {
		return
	}

	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	table, err := h.store.Reserve(id, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		if errors.Is(err, store.ErrInvalidTransition) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "table is not available"})
			return
		}
		log.Printf("ERROR: reserve table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.publishTable(table)
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Release returns a table to available, clearing any reservation. Manual
// action only; order completion releases tables through the order service.
func (h *TableHandler) Release(w http.ResponseWriter, r *http.Request) {
	id, ok := h.tableID(w, r)
	if !ok {
		return
	}

	table, err := h.store.Release(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: release table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.publishTable(table)
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// ActiveOrder returns the table's current non-terminal order.
func (h *TableHandler) ActiveOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.tableID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.ActiveOrderByTable(id)
	if err != nil {
		if errors.Is(err, service.ErrTableNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active order for table"})
			return
		}
		log.Printf("ERROR: get active order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateGuestCount changes the guest count on the table's active order.
func (h *TableHandler) UpdateGuestCount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.tableID(w, r)
	if !ok {
		return
	}

	var req guestCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.orders.UpdateGuestCount(id, req.GuestCount)
	if err != nil {
		writeOrderError(w, "update guest count", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *TableHandler) publishTable(t model.Table) {
	if h.bus == nil {
		return
	}
	h.bus.Publish(notify.Event{Type: notify.EventTableChanged, Table: t})
}

func (h *TableHandler) tableID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return 0, false
	}
	return id, true
}
