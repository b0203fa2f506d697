package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuStore defines the catalog methods needed by menu handlers.
// Satisfied by *store.MenuStore; narrow interface for testability.
type MenuStore interface {
	ListDishes() []model.Dish
	ListDishesByCategory(category string) []model.Dish
	CreateDish(d model.Dish) model.Dish
	UpdateDish(d model.Dish) (model.Dish, error)
	DeleteDish(id uuid.UUID) error
	ToggleStock(id uuid.UUID) (model.Dish, error)
	ListPages() []model.MenuPage
	CreatePage(p model.MenuPage) model.MenuPage
	UpdatePage(p model.MenuPage) (model.MenuPage, error)
	DeletePage(id uuid.UUID) error
}

// MenuHandler handles dish and menu page endpoints.
type MenuHandler struct {
	store MenuStore
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore) *MenuHandler {
	return &MenuHandler{store: store}
}

// Menu routes are registered individually by the router because mutation
// endpoints and toggle-stock carry different role requirements.

// --- Request / Response types ---

type dishRequest struct {
	Name        model.LocalizedString `json:"name"`
	Description model.LocalizedString `json:"description"`
	Price       string                `json:"price"`
	Category    string                `json:"category"`
	ImageURL    string                `json:"image_url"`
	PageID      string                `json:"page_id"`
}

type dishResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         model.LocalizedString `json:"name"`
	Description  model.LocalizedString `json:"description"`
	Price        string                `json:"price"`
	Category     string                `json:"category"`
	ImageURL     string                `json:"image_url"`
	PageID       *uuid.UUID            `json:"page_id"`
	IsOutOfStock bool                  `json:"is_out_of_stock"`
}

type pageRequest struct {
	Title           model.LocalizedString `json:"title"`
	BackgroundColor string                `json:"background_color"`
	SortOrder       int32                 `json:"sort_order"`
	Category        string                `json:"category"`
}

type pageResponse struct {
	ID              uuid.UUID             `json:"id"`
	Title           model.LocalizedString `json:"title"`
	BackgroundColor string                `json:"background_color"`
	SortOrder       int32                 `json:"sort_order"`
	Category        string                `json:"category"`
}

func toDishResponse(d model.Dish) dishResponse {
	resp := dishResponse{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price.StringFixed(2),
		Category:     d.Category,
		ImageURL:     d.ImageURL,
		IsOutOfStock: d.IsOutOfStock,
	}
	if d.PageID != uuid.Nil {
		id := d.PageID
		resp.PageID = &id
	}
	return resp
}

func toPageResponse(p model.MenuPage) pageResponse {
	return pageResponse{
		ID:              p.ID,
		Title:           p.Title,
		BackgroundColor: p.BackgroundColor,
		SortOrder:       p.SortOrder,
		Category:        p.Category,
	}
}

// dishFromRequest validates and converts a dish payload.
func dishFromRequest(req dishRequest) (model.Dish, string) {
	if req.Name.Empty() {
		return model.Dish{}, "name is required"
	}
	if req.Category == "" {
		return model.Dish{}, "category is required"
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return model.Dish{}, "invalid price"
	}
	if price.IsNegative() {
		return model.Dish{}, "price must not be negative"
	}

	d := model.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	if req.PageID != "" {
		pageID, err := uuid.Parse(req.PageID)
		if err != nil {
			return model.Dish{}, "invalid page_id"
		}
		d.PageID = pageID
	}
	return d, ""
}

// --- Dish handlers ---

// ListDishes returns all dishes, optionally filtered by ?category=.
func (h *MenuHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	var dishes []model.Dish
	if category := r.URL.Query().Get("category"); category != "" {
		dishes = h.store.ListDishesByCategory(category)
	} else {
		dishes = h.store.ListDishes()
	}

	resp := make([]dishResponse, len(dishes))
	for i, d := range dishes {
		resp[i] = toDishResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateDish adds a new dish to the catalog.
func (h *MenuHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	d, msg := dishFromRequest(req)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusCreated, toDishResponse(h.store.CreateDish(d)))
}

// UpdateDish replaces an existing dish. Orders that already snapshotted the
// dish keep their captured name and price.
func (h *MenuHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dish ID"})
		return
	}

	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	d, msg := dishFromRequest(req)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	d.ID = id

	updated, err := h.store.UpdateDish(d)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "dish not found"})
			return
		}
		log.Printf("ERROR: update dish: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toDishResponse(updated))
}

// DeleteDish removes a dish from the catalog.
func (h *MenuHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dish ID"})
		return
	}

	if err := h.store.DeleteDish(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "dish not found"})
			return
		}
		log.Printf("ERROR: delete dish: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleStock flips a dish's out-of-stock flag. Exposed to stations so the
// kitchen can 86 a dish without admin access.
func (h *MenuHandler) ToggleStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dish ID"})
		return
	}

	dish, err := h.store.ToggleStock(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "dish not found"})
			return
		}
		log.Printf("ERROR: toggle stock: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toDishResponse(dish))
}

// --- Page handlers ---

// ListPages returns all menu pages in display order.
func (h *MenuHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages := h.store.ListPages()
	resp := make([]pageResponse, len(pages))
	for i, p := range pages {
		resp[i] = toPageResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreatePage adds a menu page.
func (h *MenuHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title.Empty() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}

	page := h.store.CreatePage(model.MenuPage{
		Title:           req.Title,
		BackgroundColor: req.BackgroundColor,
		SortOrder:       req.SortOrder,
		Category:        req.Category,
	})
	writeJSON(w, http.StatusCreated, toPageResponse(page))
}

// UpdatePage replaces an existing menu page.
func (h *MenuHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page ID"})
		return
	}

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title.Empty() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}

	updated, err := h.store.UpdatePage(model.MenuPage{
		ID:              id,
		Title:           req.Title,
		BackgroundColor: req.BackgroundColor,
		SortOrder:       req.SortOrder,
		Category:        req.Category,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
			return
		}
		log.Printf("ERROR: update page: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(updated))
}

// DeletePage removes a menu page and unlinks its dishes.
func (h *MenuHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page ID"})
		return
	}

	if err := h.store.DeletePage(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
			return
		}
		log.Printf("ERROR: delete page: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
