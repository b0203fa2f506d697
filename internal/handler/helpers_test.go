package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fattoush-pos/api/internal/auth"
	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/service"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const testSecret = "test-secret"

// --- Request helpers ---

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return doAuthRequest(t, router, method, path, "", body)
}

func doAuthRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeJSONList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// --- Shared fixture ---

// fixture wires real in-memory stores and the order service the way the
// router does, with a signed waiter token for authenticated requests.
type fixture struct {
	users   *store.UserStore
	menu    *store.MenuStore
	tables  *store.TableStore
	orders  *store.OrderStore
	routing *store.RoutingStore
	svc     *service.OrderService

	pizza    model.Dish
	lemonade model.Dish

	waiterID    uuid.UUID
	waiterToken string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:  store.NewUserStore(),
		menu:   store.NewMenuStore(),
		tables: store.NewTableStore(),
		orders: store.NewOrderStore(),
	}
	for id := 1; id <= 3; id++ {
		f.tables.Add(model.Table{ID: id, Capacity: 4, Status: enum.TableStatusAvailable})
	}

	f.pizza = f.menu.CreateDish(model.Dish{
		Name:     model.LocalizedString{En: "Margherita Pizza"},
		Price:    decimal.RequireFromString("12.99"),
		Category: "Main Course",
	})
	f.lemonade = f.menu.CreateDish(model.Dish{
		Name:     model.LocalizedString{En: "Fresh Lemonade"},
		Price:    decimal.RequireFromString("4.50"),
		Category: "Drinks",
	})

	f.routing = store.NewRoutingStore(model.RoutingPolicy{
		Stations: []model.StationRouting{
			{Name: enum.StationKitchen, Categories: []string{"Appetizer", "Main Course", "Dessert"}},
			{Name: enum.StationBar, Categories: []string{"Drinks"}},
		},
	})

	f.svc = service.NewOrderService(f.orders, f.tables, f.menu, f.routing, nil, 15, 5)

	waiter := f.users.Create(model.User{
		Username: "john",
		FullName: "John Waiter",
		Role:     enum.RoleWaiter,
		Pin:      "1111",
	})
	f.waiterID = waiter.ID

	token, err := auth.GenerateToken(testSecret, waiter.ID, waiter.FullName, waiter.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	f.waiterToken = token

	return f
}

// placeOrderBody builds a valid submission payload for the given dishes.
func placeOrderBody(tableID int, guests int32, dishes ...model.Dish) map[string]interface{} {
	items := make([]map[string]interface{}, len(dishes))
	for i, d := range dishes {
		items[i] = map[string]interface{}{"dish_id": d.ID.String(), "quantity": 1}
	}
	return map[string]interface{}{
		"table_id":    tableID,
		"guest_count": guests,
		"items":       items,
	}
}
