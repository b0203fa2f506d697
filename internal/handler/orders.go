package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fattoush-pos/api/internal/middleware"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/service"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	PlaceOrder(req service.PlaceOrderRequest) (model.Order, bool, error)
	GetOrder(id string) (model.Order, error)
	ListOrders(f store.OrderFilter) []model.Order
	UpdateStatus(orderID, status string) (model.Order, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type placeOrderRequest struct {
	TableID    int                     `json:"table_id"`
	GuestCount int32                   `json:"guest_count"`
	Items      []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	DishID    string `json:"dish_id"`
	Quantity  int32  `json:"quantity"`
	Notes     string `json:"notes"`
	IsAllergy bool   `json:"is_allergy"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	TableID          int                 `json:"table_id"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	WaiterID         uuid.UUID           `json:"waiter_id"`
	WaiterName       string              `json:"waiter_name"`
	GuestCount       int32               `json:"guest_count"`
	EstimatedMinutes int32               `json:"estimated_minutes"`
	Total            string              `json:"total"`
	Items            []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	DishID    uuid.UUID             `json:"dish_id"`
	Name      model.LocalizedString `json:"name"`
	Category  string                `json:"category"`
	UnitPrice string                `json:"unit_price"`
	Quantity  int32                 `json:"quantity"`
	Notes     string                `json:"notes,omitempty"`
	IsAllergy bool                  `json:"is_allergy,omitempty"`
	IsReady   bool                  `json:"is_ready"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func toOrderResponse(o model.Order) orderResponse {
	resp := orderResponse{
		ID:               o.ID,
		TableID:          o.TableID,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		WaiterID:         o.WaiterID,
		WaiterName:       o.WaiterName,
		GuestCount:       o.GuestCount,
		EstimatedMinutes: o.EstimatedMinutes,
		Total:            o.Total().StringFixed(2),
		Items:            make([]orderItemResponse, len(o.Items)),
	}
	for i, it := range o.Items {
		resp.Items[i] = orderItemResponse{
			DishID:    it.Dish.ID,
			Name:      it.Dish.Name,
			Category:  it.Dish.Category,
			UnitPrice: it.Dish.Price.StringFixed(2),
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			IsAllergy: it.IsAllergy,
			IsReady:   it.IsReady,
		}
	}
	return resp
}

// --- Handlers ---

// Create handles POST /orders: create-or-merge for the table's active order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.TableID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "table_id is required"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	svcItems := make([]service.PlaceOrderItem, len(req.Items))
	for i, item := range req.Items {
		dishID, err := uuid.Parse(item.DishID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "invalid dish_id"),
			})
			return
		}
		if item.Quantity <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "quantity must be > 0"),
			})
			return
		}
		svcItems[i] = service.PlaceOrderItem{
			DishID:    dishID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
			IsAllergy: item.IsAllergy,
		}
	}

	order, created, err := h.svc.PlaceOrder(service.PlaceOrderRequest{
		TableID:    req.TableID,
		WaiterID:   claims.UserID,
		WaiterName: claims.Name,
		GuestCount: req.GuestCount,
		Items:      svcItems,
	})
	if err != nil {
		writeOrderError(w, "place order", err)
		return
	}

	// A merge updates the table's existing order instead of creating one.
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, toOrderResponse(order))
}

// List handles GET /orders with optional status and table_id filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var f store.OrderFilter
	f.Status = r.URL.Query().Get("status")
	if s := r.URL.Query().Get("table_id"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table_id"})
			return
		}
		f.TableID = v
	}

	orders := h.svc.ListOrders(f)
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		writeOrderError(w, "get order", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /orders/{id}/status, the explicit override.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.svc.UpdateStatus(chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeOrderError(w, "update order status", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// --- Helpers ---

func formatItemError(idx int, msg string) string {
	return "items[" + strconv.Itoa(idx) + "]: " + msg
}

// writeOrderError maps service errors to HTTP statuses: validation failures
// to 400, missing references to 404, state conflicts to 409, everything
// else to 500.
func writeOrderError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidGuestCount),
		errors.Is(err, service.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTableNotFound),
		errors.Is(err, service.ErrDishNotFound),
		errors.Is(err, service.ErrUnknownStation):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrDishOutOfStock),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNothingToUndo):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
