package service

import (
	"testing"
	"time"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
)

func testPolicy() model.RoutingPolicy {
	return model.RoutingPolicy{
		Stations: []model.StationRouting{
			{Name: enum.StationKitchen, Categories: []string{"Appetizer", "Main Course"}},
			{Name: enum.StationBar, Categories: []string{"Drinks"}},
		},
	}
}

func item(category string, ready bool) model.OrderItem {
	return model.OrderItem{
		Dish:     model.Dish{Category: category},
		Quantity: 1,
		IsReady:  ready,
	}
}

func TestProjectStation_FiltersByStatus(t *testing.T) {
	orders := []model.Order{
		{ID: "ORD-1", Status: enum.OrderStatusNew, Items: []model.OrderItem{item("Main Course", false)}},
		{ID: "ORD-2", Status: enum.OrderStatusInProgress, Items: []model.OrderItem{item("Main Course", false)}},
		{ID: "ORD-3", Status: enum.OrderStatusReady, Items: []model.OrderItem{item("Main Course", true)}},
		{ID: "ORD-4", Status: enum.OrderStatusCompleted, Items: []model.OrderItem{item("Main Course", false)}},
		{ID: "ORD-5", Status: enum.OrderStatusCancelled, Items: []model.OrderItem{item("Main Course", false)}},
	}

	queue := ProjectStation(orders, testPolicy(), enum.StationKitchen)
	if len(queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(queue))
	}
	if queue[0].ID != "ORD-1" || queue[1].ID != "ORD-2" {
		t.Errorf("queue = [%s %s], want [ORD-1 ORD-2]", queue[0].ID, queue[1].ID)
	}
}

func TestProjectStation_NarrowsToOwnedUnreadyItems(t *testing.T) {
	orders := []model.Order{
		{
			ID:     "ORD-1",
			Status: enum.OrderStatusInProgress,
			Items: []model.OrderItem{
				item("Main Course", false),
				item("Main Course", true),
				item("Drinks", false),
			},
		},
	}

	queue := ProjectStation(orders, testPolicy(), enum.StationKitchen)
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	if len(queue[0].Items) != 1 {
		t.Fatalf("items = %d, want only the unready kitchen item", len(queue[0].Items))
	}
	if queue[0].Items[0].Dish.Category != "Main Course" {
		t.Errorf("item category = %s, want Main Course", queue[0].Items[0].Dish.Category)
	}
}

func TestProjectStation_DropsOrdersWithNothingToDo(t *testing.T) {
	orders := []model.Order{
		// Bar-only order: nothing for the kitchen.
		{ID: "ORD-1", Status: enum.OrderStatusNew, Items: []model.OrderItem{item("Drinks", false)}},
		// Kitchen share already done.
		{ID: "ORD-2", Status: enum.OrderStatusInProgress, Items: []model.OrderItem{
			item("Main Course", true),
			item("Drinks", false),
		}},
	}

	if queue := ProjectStation(orders, testPolicy(), enum.StationKitchen); len(queue) != 0 {
		t.Errorf("kitchen queue length = %d, want 0", len(queue))
	}
	if queue := ProjectStation(orders, testPolicy(), enum.StationBar); len(queue) != 2 {
		t.Errorf("bar queue length = %d, want 2", len(queue))
	}
}

func TestProjectStation_UnroutedCategoryFallsToDefault(t *testing.T) {
	orders := []model.Order{
		{ID: "ORD-1", Status: enum.OrderStatusNew, Items: []model.OrderItem{item("Specials", false)}},
	}

	// "Specials" is claimed by no station, so the first (default) station owns it.
	if queue := ProjectStation(orders, testPolicy(), enum.StationKitchen); len(queue) != 1 {
		t.Errorf("kitchen queue length = %d, want 1 (fallback)", len(queue))
	}
	if queue := ProjectStation(orders, testPolicy(), enum.StationBar); len(queue) != 0 {
		t.Errorf("bar queue length = %d, want 0", len(queue))
	}
}

func TestProjectStation_OldestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{ID: "ORD-3", Status: enum.OrderStatusNew, CreatedAt: base.Add(2 * time.Minute), Items: []model.OrderItem{item("Main Course", false)}},
		{ID: "ORD-1", Status: enum.OrderStatusNew, CreatedAt: base, Items: []model.OrderItem{item("Main Course", false)}},
		{ID: "ORD-2", Status: enum.OrderStatusNew, CreatedAt: base.Add(time.Minute), Items: []model.OrderItem{item("Main Course", false)}},
	}

	queue := ProjectStation(orders, testPolicy(), enum.StationKitchen)
	want := []string{"ORD-1", "ORD-2", "ORD-3"}
	for i, id := range want {
		if queue[i].ID != id {
			t.Errorf("queue[%d] = %s, want %s", i, queue[i].ID, id)
		}
	}
}

func TestProjectStation_DoesNotMutateInput(t *testing.T) {
	orders := []model.Order{
		{
			ID:     "ORD-1",
			Status: enum.OrderStatusNew,
			Items: []model.OrderItem{
				item("Main Course", false),
				item("Drinks", false),
			},
		},
	}

	ProjectStation(orders, testPolicy(), enum.StationKitchen)
	if len(orders[0].Items) != 2 {
		t.Errorf("input order items = %d, want 2 untouched", len(orders[0].Items))
	}
}
