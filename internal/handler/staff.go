package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// StaffStore defines the user methods needed by staff handlers.
// Satisfied by *store.UserStore; narrow interface for testability.
type StaffStore interface {
	List() []model.User
	GetByUsername(username string) (model.User, error)
	Create(u model.User) model.User
	Update(u model.User) (model.User, error)
	SoftDelete(id uuid.UUID) error
}

// StaffHandler handles staff CRUD endpoints.
type StaffHandler struct {
	store StaffStore
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(store StaffStore) *StaffHandler {
	return &StaffHandler{store: store}
}

// RegisterRoutes registers staff CRUD endpoints. Mounted at /staff.
func (h *StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type createStaffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Pin      string `json:"pin"`
}

type updateStaffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Pin      string `json:"pin"`
}

type staffDetailResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Pin       string    `json:"pin,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toStaffDetailResponse(u model.User) staffDetailResponse {
	return staffDetailResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		Pin:       u.Pin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// --- Handlers ---

// List returns all active staff members.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	users := h.store.List()
	resp := make([]staffDetailResponse, len(users))
	for i, u := range users {
		resp[i] = toStaffDetailResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new staff member. Admins authenticate with a password,
// everyone else with a PIN; both may be set on the same account.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg := validateStaffRequest(req.Username, req.FullName, req.Role, req.Pin); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	if req.Role == enum.RoleAdmin && req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password is required for admin accounts"})
		return
	}
	if req.Role != enum.RoleAdmin && req.Pin == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pin is required for non-admin accounts"})
		return
	}

	if _, err := h.store.GetByUsername(req.Username); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "username already exists"})
		return
	}

	user := model.User{
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
		Pin:      req.Pin,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: create staff: hash password: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		user.HashedPassword = string(hashed)
	}

	writeJSON(w, http.StatusCreated, toStaffDetailResponse(h.store.Create(user)))
}

// Update modifies an existing staff member. An empty password leaves the
// current one unchanged.
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}

	var req updateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg := validateStaffRequest(req.Username, req.FullName, req.Role, req.Pin); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	if existing, err := h.store.GetByUsername(req.Username); err == nil && existing.ID != userID {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "username already exists"})
		return
	}

	user := model.User{
		ID:       userID,
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
		Pin:      req.Pin,
		IsActive: true,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: update staff: hash password: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		user.HashedPassword = string(hashed)
	}

	updated, err := h.store.Update(user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		log.Printf("ERROR: update staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toStaffDetailResponse(updated))
}

// Delete soft-deletes a staff member by setting is_active=false.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}

	if err := h.store.SoftDelete(userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		log.Printf("ERROR: delete staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func validateStaffRequest(username, fullName, role, pin string) string {
	if username == "" || fullName == "" || role == "" {
		return "username, full_name, and role are required"
	}
	if !isValidRole(role) {
		return "invalid role"
	}
	if pin != "" {
		if len(pin) < 4 || len(pin) > 6 {
			return "PIN must be 4-6 digits"
		}
		for _, c := range pin {
			if c < '0' || c > '9' {
				return "PIN must be 4-6 digits"
			}
		}
	}
	return ""
}

func isValidRole(role string) bool {
	switch role {
	case enum.RoleAdmin, enum.RoleWaiter,
		enum.RoleKitchen, enum.RoleBar:
		return true
	}
	return false
}
