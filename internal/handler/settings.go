package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/store"
)

// RoutingStore defines the methods needed by settings handlers.
// Satisfied by *store.RoutingStore; narrow interface for testability.
type RoutingStore interface {
	Policy() model.RoutingPolicy
	SetPolicy(p model.RoutingPolicy) error
}

// SettingsHandler handles station routing configuration.
type SettingsHandler struct {
	routing RoutingStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(routing RoutingStore) *SettingsHandler {
	return &SettingsHandler{routing: routing}
}

// Settings routes are registered individually by the router because the
// read and write endpoints carry different role requirements.

type stationRoutingPayload struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

type routingPayload struct {
	Stations []stationRoutingPayload `json:"stations"`
}

func toRoutingPayload(p model.RoutingPolicy) routingPayload {
	resp := routingPayload{Stations: make([]stationRoutingPayload, len(p.Stations))}
	for i, s := range p.Stations {
		resp.Stations[i] = stationRoutingPayload{Name: s.Name, Categories: s.Categories}
	}
	return resp
}

// GetRouting returns the current station routing policy.
func (h *SettingsHandler) GetRouting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRoutingPayload(h.routing.Policy()))
}

// UpdateRouting replaces the station routing policy. Categories not claimed
// by any station fall through to the first station in the list.
func (h *SettingsHandler) UpdateRouting(w http.ResponseWriter, r *http.Request) {
	var req routingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	policy := model.RoutingPolicy{Stations: make([]model.StationRouting, len(req.Stations))}
	for i, s := range req.Stations {
		policy.Stations[i] = model.StationRouting{Name: s.Name, Categories: s.Categories}
	}

	if err := h.routing.SetPolicy(policy); err != nil {
		switch {
		case errors.Is(err, store.ErrNoStations),
			errors.Is(err, store.ErrEmptyStationName),
			errors.Is(err, store.ErrDuplicateStation):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: update routing: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, toRoutingPayload(h.routing.Policy()))
}
