package store

import (
	"errors"
	"testing"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/google/uuid"
)

func TestUserStore_CreateActivatesAndAssignsID(t *testing.T) {
	s := NewUserStore()
	u := s.Create(model.User{Username: "john", Role: enum.RoleWaiter, Pin: "1111"})

	if u.ID == uuid.Nil {
		t.Error("Create did not assign an ID")
	}
	if !u.IsActive {
		t.Error("created user should be active")
	}
	if u.CreatedAt.IsZero() {
		t.Error("Create did not set CreatedAt")
	}
}

func TestUserStore_LookupsSkipInactive(t *testing.T) {
	s := NewUserStore()
	u := s.Create(model.User{Username: "john", Role: enum.RoleWaiter, Pin: "1111"})

	if _, err := s.GetByUsername("john"); err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if _, err := s.GetByPin("1111"); err != nil {
		t.Fatalf("GetByPin: %v", err)
	}

	if err := s.SoftDelete(u.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := s.GetByUsername("john"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByUsername after delete = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByPin("1111"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPin after delete = %v, want ErrNotFound", err)
	}
	// Get still resolves so deleted waiters stay attributable on old orders.
	if _, err := s.Get(u.ID); err != nil {
		t.Errorf("Get after delete = %v, want resolvable", err)
	}
}

func TestUserStore_GetByPinIgnoresEmptyPin(t *testing.T) {
	s := NewUserStore()
	s.Create(model.User{Username: "admin", Role: enum.RoleAdmin}) // no PIN

	if _, err := s.GetByPin(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPin(\"\") = %v, want ErrNotFound", err)
	}
}

func TestUserStore_ListExcludesDeleted(t *testing.T) {
	s := NewUserStore()
	s.Create(model.User{Username: "john", Role: enum.RoleWaiter, Pin: "1111"})
	jane := s.Create(model.User{Username: "jane", Role: enum.RoleWaiter, Pin: "2222"})

	if err := s.SoftDelete(jane.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	list := s.List()
	if len(list) != 1 || list[0].Username != "john" {
		t.Errorf("List = %v, want only john", list)
	}
}

func TestUserStore_UpdatePreservesCreatedAt(t *testing.T) {
	s := NewUserStore()
	u := s.Create(model.User{Username: "john", Role: enum.RoleWaiter, Pin: "1111"})

	u.FullName = "John Doe"
	u.CreatedAt = u.CreatedAt.AddDate(0, 0, 1)
	updated, err := s.Update(u)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, _ := s.Get(u.ID)
	if stored.FullName != "John Doe" {
		t.Errorf("FullName = %q, want updated", stored.FullName)
	}
	if !updated.CreatedAt.Equal(stored.CreatedAt) {
		t.Error("Update returned a different CreatedAt than it stored")
	}
}

func TestUserStore_SoftDeleteTwice(t *testing.T) {
	s := NewUserStore()
	u := s.Create(model.User{Username: "john", Role: enum.RoleWaiter, Pin: "1111"})

	if err := s.SoftDelete(u.ID); err != nil {
		t.Fatalf("first SoftDelete: %v", err)
	}
	if err := s.SoftDelete(u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second SoftDelete = %v, want ErrNotFound", err)
	}
}
