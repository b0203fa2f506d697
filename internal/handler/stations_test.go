package handler_test

import (
	"net/http"
	"testing"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/handler"
	"github.com/fattoush-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
)

func stationsRouter(t *testing.T) (chi.Router, *fixture) {
	t.Helper()
	f := newFixture(t)

	r := chi.NewRouter()
	r.Route("/stations/{station}", handler.NewStationHandler(f.svc).RegisterRoutes)
	return r, f
}

func placeSplitOrder(t *testing.T, f *fixture, tableID int) string {
	t.Helper()
	o, _, err := f.svc.PlaceOrder(service.PlaceOrderRequest{
		TableID:    tableID,
		WaiterID:   f.waiterID,
		WaiterName: "John Waiter",
		GuestCount: 2,
		Items: []service.PlaceOrderItem{
			{DishID: f.pizza.ID, Quantity: 1},
			{DishID: f.lemonade.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	return o.ID
}

func TestStationQueue_NarrowedToStation(t *testing.T) {
	r, f := stationsRouter(t)
	placeSplitOrder(t, f, 1)

	rr := doRequest(t, r, "GET", "/stations/kitchen/queue", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	resp := decodeJSON(t, rr)
	if resp["station"] != enum.StationKitchen {
		t.Errorf("station = %v, want kitchen", resp["station"])
	}
	orders := resp["orders"].([]interface{})
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	items := orders[0].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want only the kitchen share", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["category"] != "Main Course" {
		t.Errorf("category = %v, want Main Course", item["category"])
	}
}

func TestStationQueue_UnknownStation(t *testing.T) {
	r, f := stationsRouter(t)
	placeSplitOrder(t, f, 1)

	rr := doRequest(t, r, "GET", "/stations/patisserie/queue", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestStationBump_RemovesFromQueue(t *testing.T) {
	r, f := stationsRouter(t)
	orderID := placeSplitOrder(t, f, 1)

	rr := doRequest(t, r, "POST", "/stations/kitchen/orders/"+orderID+"/bump", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["status"]; got != enum.OrderStatusInProgress {
		t.Errorf("order status = %v, want IN_PROGRESS (bar share pending)", got)
	}

	queue := doRequest(t, r, "GET", "/stations/kitchen/queue", nil)
	if orders := decodeJSON(t, queue)["orders"].([]interface{}); len(orders) != 0 {
		t.Errorf("kitchen queue = %d orders, want 0 after bump", len(orders))
	}

	barQueue := doRequest(t, r, "GET", "/stations/bar/queue", nil)
	if orders := decodeJSON(t, barQueue)["orders"].([]interface{}); len(orders) != 1 {
		t.Errorf("bar queue = %d orders, want 1", len(orders))
	}
}

func TestStationBump_CompletedOrder(t *testing.T) {
	r, f := stationsRouter(t)
	orderID := placeSplitOrder(t, f, 1)
	if _, err := f.svc.UpdateStatus(orderID, enum.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	rr := doRequest(t, r, "POST", "/stations/kitchen/orders/"+orderID+"/bump", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}

func TestStationUndo_RestoresQueue(t *testing.T) {
	r, f := stationsRouter(t)
	orderID := placeSplitOrder(t, f, 1)

	doRequest(t, r, "POST", "/stations/kitchen/orders/"+orderID+"/bump", nil)

	rr := doRequest(t, r, "POST", "/stations/kitchen/undo", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	queue := doRequest(t, r, "GET", "/stations/kitchen/queue", nil)
	if orders := decodeJSON(t, queue)["orders"].([]interface{}); len(orders) != 1 {
		t.Errorf("kitchen queue = %d orders, want 1 after undo", len(orders))
	}
}

func TestStationUndo_EmptyHistory(t *testing.T) {
	r, _ := stationsRouter(t)

	rr := doRequest(t, r, "POST", "/stations/kitchen/undo", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}
