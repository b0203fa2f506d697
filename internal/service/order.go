package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/notify"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/google/uuid"
)

const undoHistorySize = 5

// Errors returned by the order service.
var (
	ErrEmptyItems        = errors.New("items are required")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidGuestCount = errors.New("guest_count must be > 0")
	ErrDishNotFound      = errors.New("dish not found")
	ErrDishOutOfStock    = errors.New("dish is out of stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrTableNotFound     = errors.New("table not found")
	ErrUnknownStation    = errors.New("unknown station")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNothingToUndo     = errors.New("no bump to undo")
)

// allowedTransitions defines the explicit (override) status moves. Key is
// current status, value the set it may move to. READY is reachable here as
// an override; the normal path derives it from item readiness. Cancellation
// is deliberately not reachable from READY, matching house policy.
var allowedTransitions = map[string][]string{
	enum.OrderStatusNew:        {enum.OrderStatusInProgress, enum.OrderStatusReady, enum.OrderStatusCompleted, enum.OrderStatusCancelled},
	enum.OrderStatusInProgress: {enum.OrderStatusReady, enum.OrderStatusCompleted, enum.OrderStatusCancelled},
	enum.OrderStatusReady:      {enum.OrderStatusCompleted},
}

// PlaceOrderItem is one requested line of a submission.
type PlaceOrderItem struct {
	DishID    uuid.UUID
	Quantity  int32
	Notes     string
	IsAllergy bool
}

// PlaceOrderRequest is a waiter submission for a table. If the table already
// has an active order the items are merged into it; otherwise a new order is
// created and the table occupied.
type PlaceOrderRequest struct {
	TableID    int
	WaiterID   uuid.UUID
	WaiterName string
	GuestCount int32 // required for a new order; 0 leaves a merge unchanged
	Items      []PlaceOrderItem
}

// bumpRecord remembers which item indexes one bump flipped, so an undo can
// un-ready exactly those items and nothing another station bumped.
type bumpRecord struct {
	orderID string
	items   []int
}

// OrderService owns the order lifecycle state machine. Every transition runs
// under one mutex so merges and bumps are indivisible read-modify-write
// operations even with concurrent HTTP clients.
type OrderService struct {
	mu      sync.Mutex
	orders  *store.OrderStore
	tables  *store.TableStore
	menu    *store.MenuStore
	routing *store.RoutingStore
	bus     *notify.Bus

	estimateBase     int32
	estimatePerOrder int32

	undo map[string][]bumpRecord // station -> most recent last
}

// NewOrderService wires the service to its stores. bus may be nil.
func NewOrderService(orders *store.OrderStore, tables *store.TableStore, menu *store.MenuStore, routing *store.RoutingStore, bus *notify.Bus, estimateBase, estimatePerOrder int) *OrderService {
	return &OrderService{
		orders:           orders,
		tables:           tables,
		menu:             menu,
		routing:          routing,
		bus:              bus,
		estimateBase:     int32(estimateBase),
		estimatePerOrder: int32(estimatePerOrder),
		undo:             make(map[string][]bumpRecord),
	}
}

// PlaceOrder implements create-or-merge. New items always start unready; a
// merge never reverts the order's status. Side effects: table occupation on
// create and an ETA recompute on both paths. The returned bool reports
// whether a new order was created; false means the items merged into the
// table's active order.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (model.Order, bool, error) {
	if len(req.Items) == 0 {
		return model.Order{}, false, ErrEmptyItems
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return model.Order{}, false, ErrInvalidQuantity
		}
	}
	if req.GuestCount < 0 {
		return model.Order{}, false, ErrInvalidGuestCount
	}

	var events []notify.Event
	defer s.flush(&events)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tables.Get(req.TableID); err != nil {
		return model.Order{}, false, ErrTableNotFound
	}

	// Snapshot dishes up front so a partial failure leaves no half-applied
	// order behind. Out-of-stock blocks new additions only; items already on
	// a ticket are never retracted.
	items := make([]model.OrderItem, len(req.Items))
	for i, it := range req.Items {
		dish, err := s.menu.Snapshot(it.DishID)
		if err != nil {
			return model.Order{}, false, ErrDishNotFound
		}
		if dish.IsOutOfStock {
			return model.Order{}, false, fmt.Errorf("%w: %s", ErrDishOutOfStock, dish.Name.En)
		}
		items[i] = model.OrderItem{
			Dish:      dish,
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			IsAllergy: it.IsAllergy,
		}
	}

	if existing, ok := s.orders.ActiveByTable(req.TableID); ok {
		existing.Items = append(existing.Items, items...)
		if req.GuestCount > 0 {
			existing.GuestCount = req.GuestCount
		}
		// Unready items were appended, so a READY order is in progress again.
		if existing.Status == enum.OrderStatusReady {
			existing.Status = enum.OrderStatusInProgress
		}
		existing.EstimatedMinutes = s.estimate(s.orders.CountActive() - 1)
		if err := s.orders.Update(existing); err != nil {
			return model.Order{}, false, err
		}
		events = append(events, orderEvent(notify.EventOrderUpdated, existing))
		return existing, false, nil
	}

	if req.GuestCount == 0 {
		return model.Order{}, false, ErrInvalidGuestCount
	}

	order := model.Order{
		TableID:          req.TableID,
		Items:            items,
		Status:           enum.OrderStatusNew,
		WaiterID:         req.WaiterID,
		WaiterName:       req.WaiterName,
		GuestCount:       req.GuestCount,
		EstimatedMinutes: s.estimate(s.orders.CountActive()),
	}
	order = s.orders.Create(order)
	tbl, err := s.tables.Occupy(req.TableID)
	if err != nil {
		return model.Order{}, false, err
	}
	events = append(events, orderEvent(notify.EventOrderCreated, order), tableEvent(tbl))
	return order, true, nil
}

// GetOrder returns one order.
func (s *OrderService) GetOrder(id string) (model.Order, error) {
	o, err := s.orders.Get(id)
	if err != nil {
		return model.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ListOrders returns orders matching the filter, creation order.
func (s *OrderService) ListOrders(f store.OrderFilter) []model.Order {
	return s.orders.List(f)
}

// ActiveOrderByTable returns the table's active order.
func (s *OrderService) ActiveOrderByTable(tableID int) (model.Order, error) {
	if _, err := s.tables.Get(tableID); err != nil {
		return model.Order{}, ErrTableNotFound
	}
	o, ok := s.orders.ActiveByTable(tableID)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// UpdateGuestCount changes the guest count on a table's active order.
func (s *OrderService) UpdateGuestCount(tableID int, count int32) (model.Order, error) {
	if count <= 0 {
		return model.Order{}, ErrInvalidGuestCount
	}

	var events []notify.Event
	defer s.flush(&events)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tables.Get(tableID); err != nil {
		return model.Order{}, ErrTableNotFound
	}
	o, ok := s.orders.ActiveByTable(tableID)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	o.GuestCount = count
	if err := s.orders.Update(o); err != nil {
		return model.Order{}, err
	}
	events = append(events, orderEvent(notify.EventOrderUpdated, o))
	return o, nil
}

// StationQueue projects the live queue for one station.
func (s *OrderService) StationQueue(station string) ([]model.Order, error) {
	policy := s.routing.Policy()
	if !policy.HasStation(station) {
		return nil, ErrUnknownStation
	}
	return ProjectStation(s.orders.ListActive(), policy, station), nil
}

// Bump marks every unready item routed to the station as ready and derives
// the order status: all items ready means READY, a first bump moves NEW to
// IN_PROGRESS. Bumping when the station's items are already ready is a
// no-op, not an error. The cross-station join lives here: an order split
// between stations only reaches READY once each has bumped its share.
func (s *OrderService) Bump(station, orderID string) (model.Order, error) {
	var events []notify.Event
	defer s.flush(&events)
	s.mu.Lock()
	defer s.mu.Unlock()

	policy := s.routing.Policy()
	if !policy.HasStation(station) {
		return model.Order{}, ErrUnknownStation
	}

	o, err := s.orders.Get(orderID)
	if err != nil {
		return model.Order{}, ErrOrderNotFound
	}
	if o.Status == enum.OrderStatusCompleted || o.Status == enum.OrderStatusCancelled {
		return model.Order{}, fmt.Errorf("%w: order is %s", ErrInvalidTransition, o.Status)
	}

	var flipped []int
	for i := range o.Items {
		if !o.Items[i].IsReady && policy.Owns(station, o.Items[i].Dish.Category) {
			o.Items[i].IsReady = true
			flipped = append(flipped, i)
		}
	}
	if len(flipped) == 0 {
		return o, nil
	}

	if o.AllItemsReady() {
		o.Status = enum.OrderStatusReady
	} else if o.Status == enum.OrderStatusNew {
		o.Status = enum.OrderStatusInProgress
	}
	if err := s.orders.Update(o); err != nil {
		return model.Order{}, err
	}

	s.undo[station] = append(s.undo[station], bumpRecord{orderID: orderID, items: flipped})
	if len(s.undo[station]) > undoHistorySize {
		s.undo[station] = s.undo[station][1:]
	}

	events = append(events, orderEvent(notify.EventOrderStatusChanged, o))
	return o, nil
}

// UndoBump reverts the station's most recent bump, un-readying the exact
// items that bump flipped so READY always means every item is ready.
func (s *OrderService) UndoBump(station string) (model.Order, error) {
	var events []notify.Event
	defer s.flush(&events)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.routing.Policy().HasStation(station) {
		return model.Order{}, ErrUnknownStation
	}

	history := s.undo[station]
	if len(history) == 0 {
		return model.Order{}, ErrNothingToUndo
	}
	rec := history[len(history)-1]
	s.undo[station] = history[:len(history)-1]

	o, err := s.orders.Get(rec.orderID)
	if err != nil {
		return model.Order{}, ErrOrderNotFound
	}
	if o.Status == enum.OrderStatusCompleted || o.Status == enum.OrderStatusCancelled {
		return model.Order{}, fmt.Errorf("%w: order is %s", ErrInvalidTransition, o.Status)
	}

	for _, i := range rec.items {
		if i < len(o.Items) {
			o.Items[i].IsReady = false
		}
	}
	if o.Status == enum.OrderStatusReady {
		o.Status = enum.OrderStatusInProgress
	}
	if err := s.orders.Update(o); err != nil {
		return model.Order{}, err
	}
	events = append(events, orderEvent(notify.EventOrderStatusChanged, o))
	return o, nil
}

// UpdateStatus is the explicit waiter/admin override, bypassing readiness
// aggregation. Moving to READY marks every item ready so READY still means
// all-items-ready; terminal statuses release the table.
func (s *OrderService) UpdateStatus(orderID, status string) (model.Order, error) {
	if !isValidOrderStatus(status) {
		return model.Order{}, ErrInvalidStatus
	}

	var events []notify.Event
	defer s.flush(&events)
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.orders.Get(orderID)
	if err != nil {
		return model.Order{}, ErrOrderNotFound
	}
	if err := validateStatusTransition(o.Status, status); err != nil {
		return model.Order{}, err
	}

	o.Status = status
	if status == enum.OrderStatusReady {
		for i := range o.Items {
			o.Items[i].IsReady = true
		}
	}
	if err := s.orders.Update(o); err != nil {
		return model.Order{}, err
	}

	events = append(events, orderEvent(notify.EventOrderStatusChanged, o))
	if status == enum.OrderStatusCompleted || status == enum.OrderStatusCancelled {
		tbl, err := s.tables.Release(o.TableID)
		if err != nil {
			// An order referencing a table missing from the registry is
			// corrupt internal state, not a caller mistake.
			return model.Order{}, fmt.Errorf("release table %d: %w", o.TableID, err)
		}
		events = append(events, tableEvent(tbl))
	}

	return o, nil
}

func (s *OrderService) estimate(otherActive int) int32 {
	return s.estimateBase + s.estimatePerOrder*int32(otherActive)
}

// flush delivers queued events. Callers register it before the state mutex
// defer, so delivery happens after the lock is released and subscribers may
// call back into the service without deadlocking.
func (s *OrderService) flush(events *[]notify.Event) {
	if s.bus == nil {
		return
	}
	for _, e := range *events {
		s.bus.Publish(e)
	}
}

func orderEvent(eventType string, o model.Order) notify.Event {
	return notify.Event{Type: eventType, Order: o.Clone()}
}

func tableEvent(t model.Table) notify.Event {
	return notify.Event{Type: notify.EventTableChanged, Table: t}
}

func isValidOrderStatus(status string) bool {
	switch status {
	case enum.OrderStatusNew,
		enum.OrderStatusInProgress,
		enum.OrderStatusReady,
		enum.OrderStatusCompleted,
		enum.OrderStatusCancelled:
		return true
	}
	return false
}

func validateStatusTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("%w: cannot transition from %s", ErrInvalidTransition, current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, current, next)
}
