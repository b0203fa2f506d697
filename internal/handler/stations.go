package handler

import (
	"net/http"

	"github.com/fattoush-pos/api/internal/model"
	"github.com/go-chi/chi/v5"
)

// StationServicer defines the service methods needed by station handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type StationServicer interface {
	StationQueue(station string) ([]model.Order, error)
	Bump(station, orderID string) (model.Order, error)
	UndoBump(station string) (model.Order, error)
}

// StationHandler handles the preparation screen endpoints.
type StationHandler struct {
	svc StationServicer
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(svc StationServicer) *StationHandler {
	return &StationHandler{svc: svc}
}

// RegisterRoutes registers station endpoints on the given Chi router.
// Expected to be mounted at /stations/{station}.
func (h *StationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/queue", h.Queue)
	r.Post("/orders/{id}/bump", h.Bump)
	r.Post("/undo", h.Undo)
}

type stationQueueResponse struct {
	Station string          `json:"station"`
	Orders  []orderResponse `json:"orders"`
}

// Queue returns the station's live queue, oldest ticket first. Each order is
// narrowed to the station's unready items.
func (h *StationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "station")

	orders, err := h.svc.StationQueue(station)
	if err != nil {
		writeOrderError(w, "station queue", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, stationQueueResponse{Station: station, Orders: resp})
}

// Bump marks the station's items on the order as ready.
func (h *StationHandler) Bump(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "station")
	orderID := chi.URLParam(r, "id")

	order, err := h.svc.Bump(station, orderID)
	if err != nil {
		writeOrderError(w, "bump order", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Undo reverts the station's most recent bump.
func (h *StationHandler) Undo(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "station")

	order, err := h.svc.UndoBump(station)
	if err != nil {
		writeOrderError(w, "undo bump", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}
