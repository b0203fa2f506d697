package store

import (
	"errors"
	"testing"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
)

func seededTables() *TableStore {
	s := NewTableStore()
	for id := 1; id <= 3; id++ {
		s.Add(model.Table{ID: id, Capacity: 4})
	}
	return s
}

func TestTableStore_AddDefaultsToAvailable(t *testing.T) {
	s := seededTables()
	tbl, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tbl.Status != enum.TableStatusAvailable {
		t.Errorf("status = %s, want AVAILABLE", tbl.Status)
	}
}

func TestTableStore_ListSortedByID(t *testing.T) {
	s := NewTableStore()
	s.Add(model.Table{ID: 3})
	s.Add(model.Table{ID: 1})
	s.Add(model.Table{ID: 2})

	list := s.List()
	for i, tbl := range list {
		if tbl.ID != i+1 {
			t.Errorf("list[%d].ID = %d, want %d", i, tbl.ID, i+1)
		}
	}
}

func TestTableStore_Reserve(t *testing.T) {
	s := seededTables()

	tbl, err := s.Reserve(1, "Rossi")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if tbl.Status != enum.TableStatusReserved || tbl.ReservationName != "Rossi" {
		t.Errorf("got %s/%q, want RESERVED/Rossi", tbl.Status, tbl.ReservationName)
	}

	// Reserving again, or reserving an occupied table, is rejected.
	if _, err := s.Reserve(1, "Bianchi"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
	if _, err := s.Occupy(2); err != nil {
		t.Fatalf("Occupy: %v", err)
	}
	if _, err := s.Reserve(2, "Verdi"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestTableStore_ReleaseClearsReservation(t *testing.T) {
	s := seededTables()
	if _, err := s.Reserve(1, "Rossi"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	tbl, err := s.Release(1)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if tbl.Status != enum.TableStatusAvailable || tbl.ReservationName != "" {
		t.Errorf("got %s/%q, want AVAILABLE with no name", tbl.Status, tbl.ReservationName)
	}
}

func TestTableStore_OccupyOverridesReservation(t *testing.T) {
	s := seededTables()
	if _, err := s.Reserve(1, "Rossi"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	// The party arrived: seating the reserved table clears the hold.
	tbl, err := s.Occupy(1)
	if err != nil {
		t.Fatalf("Occupy: %v", err)
	}
	if tbl.Status != enum.TableStatusOccupied || tbl.ReservationName != "" {
		t.Errorf("got %s/%q, want OCCUPIED with no name", tbl.Status, tbl.ReservationName)
	}
}

func TestTableStore_UnknownTable(t *testing.T) {
	s := seededTables()
	if _, err := s.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got: %v", err)
	}
	if _, err := s.Reserve(99, "Rossi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reserve: expected ErrNotFound, got: %v", err)
	}
	if _, err := s.Release(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Release: expected ErrNotFound, got: %v", err)
	}
	if _, err := s.Occupy(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Occupy: expected ErrNotFound, got: %v", err)
	}
}
