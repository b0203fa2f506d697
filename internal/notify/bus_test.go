package notify

import (
	"sync"
	"testing"

	"github.com/fattoush-pos/api/internal/model"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var got1, got2 []string
	bus.Subscribe(func(e Event) { got1 = append(got1, e.Type) })
	bus.Subscribe(func(e Event) { got2 = append(got2, e.Type) })

	bus.Publish(Event{Type: EventOrderCreated, Order: model.Order{ID: "ORD-1"}})
	bus.Publish(Event{Type: EventOrderStatusChanged, Order: model.Order{ID: "ORD-1"}})

	for i, got := range [][]string{got1, got2} {
		if len(got) != 2 || got[0] != EventOrderCreated || got[1] != EventOrderStatusChanged {
			t.Errorf("subscriber %d received %v", i+1, got)
		}
	}
}

func TestBusCarriesTableSnapshot(t *testing.T) {
	bus := NewBus()

	var got Event
	bus.Subscribe(func(e Event) { got = e })

	bus.Publish(Event{Type: EventTableChanged, Table: model.Table{ID: 3, Status: "OCCUPIED"}})

	if got.Type != EventTableChanged {
		t.Errorf("type = %s, want %s", got.Type, EventTableChanged)
	}
	if got.Table.ID != 3 || got.Table.Status != "OCCUPIED" {
		t.Errorf("table = %+v, want table 3 OCCUPIED", got.Table)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(func(e Event) { calls++ })

	bus.Publish(Event{Type: EventOrderCreated})
	unsubscribe()
	bus.Publish(Event{Type: EventOrderUpdated})

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (events after unsubscribe must not arrive)", calls)
	}
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	received := 0
	bus.Subscribe(func(e Event) {
		mu.Lock()
		received++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(Event{Type: EventOrderUpdated})
			}
		}()
	}
	wg.Wait()

	if received != 1000 {
		t.Errorf("received = %d, want 1000", received)
	}
}
