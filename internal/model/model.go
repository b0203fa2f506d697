package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalizedString holds the three display languages the menu supports.
// A closed struct rather than a map so a typo'd language code cannot
// silently create a fourth language.
type LocalizedString struct {
	Ar string `json:"ar"`
	En string `json:"en"`
	It string `json:"it"`
}

// Empty reports whether no language has a value.
func (l LocalizedString) Empty() bool {
	return l.Ar == "" && l.En == "" && l.It == ""
}

// Dish is a menu item. Price and name are snapshotted into order items at
// add-time, so later menu edits never alter historical orders.
type Dish struct {
	ID           uuid.UUID
	Name         LocalizedString
	Description  LocalizedString
	Price        decimal.Decimal
	Category     string
	ImageURL     string
	PageID       uuid.UUID // uuid.Nil when the dish is not linked to a page
	IsOutOfStock bool
}

// MenuPage is a named menu section. Presentation metadata for the browsing
// UI; its Category is what matters for routing.
type MenuPage struct {
	ID              uuid.UUID
	Title           LocalizedString
	BackgroundColor string
	SortOrder       int32
	Category        string
}

// OrderItem is one line of a ticket. Dish is a value copy captured when the
// item was added.
type OrderItem struct {
	Dish      Dish
	Quantity  int32
	Notes     string
	IsAllergy bool
	IsReady   bool
}

// Order is the aggregate root of the lifecycle. Items keep submission order,
// which is the kitchen ticket order.
type Order struct {
	ID               string
	TableID          int
	Items            []OrderItem
	Status           string
	CreatedAt        time.Time
	WaiterID         uuid.UUID
	WaiterName       string
	GuestCount       int32
	EstimatedMinutes int32
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate shared state behind the lock.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

// AllItemsReady reports whether every item on the order has been bumped.
// An order with no items is never considered ready.
func (o Order) AllItemsReady() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, it := range o.Items {
		if !it.IsReady {
			return false
		}
	}
	return true
}

// Total is the ticket total from the snapshotted prices.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Dish.Price.Mul(decimal.NewFromInt32(it.Quantity)))
	}
	return total
}

// Table is a physical table. Status is derived from order activity except
// for the explicit reserve/release actions.
type Table struct {
	ID              int
	Capacity        int32
	Status          string
	ReservationName string
}

// User is a staff member. Admins authenticate with a bcrypt-hashed password;
// other roles use a PIN (stored plain, low-entropy by design).
type User struct {
	ID             uuid.UUID
	Username       string
	FullName       string
	Role           string
	Pin            string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}

// StationRouting maps one preparation station to the menu categories it
// receives.
type StationRouting struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// RoutingPolicy is the full station configuration. The first station is the
// default: categories routed to no station at all fall through to it, so no
// item can vanish from every screen.
type RoutingPolicy struct {
	Stations []StationRouting `json:"stations"`
}

// Clone returns a deep copy of the policy.
func (p RoutingPolicy) Clone() RoutingPolicy {
	out := RoutingPolicy{Stations: make([]StationRouting, len(p.Stations))}
	for i, s := range p.Stations {
		cats := make([]string, len(s.Categories))
		copy(cats, s.Categories)
		out.Stations[i] = StationRouting{Name: s.Name, Categories: cats}
	}
	return out
}

// HasStation reports whether the policy knows the given station.
func (p RoutingPolicy) HasStation(name string) bool {
	for _, s := range p.Stations {
		if s.Name == name {
			return true
		}
	}
	return false
}

// DefaultStation returns the fallback station for unrouted categories.
func (p RoutingPolicy) DefaultStation() string {
	if len(p.Stations) == 0 {
		return ""
	}
	return p.Stations[0].Name
}

// Owns reports whether the station should see items of the given category.
// A category may be owned by several stations; one owned by none belongs to
// the default station.
func (p RoutingPolicy) Owns(station, category string) bool {
	routed := false
	owns := false
	for _, s := range p.Stations {
		for _, c := range s.Categories {
			if c != category {
				continue
			}
			routed = true
			if s.Name == station {
				owns = true
			}
		}
	}
	if owns {
		return true
	}
	return !routed && station == p.DefaultStation()
}
