package handler_test

import (
	"net/http"
	"testing"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/handler"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

func staffRouter(t *testing.T) (chi.Router, *fixture) {
	t.Helper()
	f := newFixture(t)

	r := chi.NewRouter()
	r.Route("/staff", handler.NewStaffHandler(f.users).RegisterRoutes)
	return r, f
}

func TestStaffCreate_Waiter(t *testing.T) {
	r, _ := staffRouter(t)

	rr := doRequest(t, r, "POST", "/staff", map[string]string{
		"username":  "jane",
		"full_name": "Jane Waiter",
		"role":      enum.RoleWaiter,
		"pin":       "2222",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSON(t, rr)
	if resp["pin"] != "2222" || resp["is_active"] != true {
		t.Errorf("got pin=%v active=%v, want 2222/true", resp["pin"], resp["is_active"])
	}
}

func TestStaffCreate_AdminPasswordHashed(t *testing.T) {
	r, f := staffRouter(t)

	rr := doRequest(t, r, "POST", "/staff", map[string]string{
		"username":  "boss",
		"full_name": "The Boss",
		"role":      enum.RoleAdmin,
		"password":  "s3cret",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	user, err := f.users.GetByUsername("boss")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.HashedPassword == "s3cret" || user.HashedPassword == "" {
		t.Fatal("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestStaffCreate_Validation(t *testing.T) {
	r, _ := staffRouter(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"username": "x"}},
		{"bad role", map[string]string{"username": "x", "full_name": "X", "role": "CHEF", "pin": "1234"}},
		{"short pin", map[string]string{"username": "x", "full_name": "X", "role": enum.RoleWaiter, "pin": "12"}},
		{"alpha pin", map[string]string{"username": "x", "full_name": "X", "role": enum.RoleWaiter, "pin": "abcd"}},
		{"admin without password", map[string]string{"username": "x", "full_name": "X", "role": enum.RoleAdmin}},
		{"waiter without pin", map[string]string{"username": "x", "full_name": "X", "role": enum.RoleWaiter}},
	}
	for _, tc := range cases {
		rr := doRequest(t, r, "POST", "/staff", tc.body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rr.Code)
		}
	}
}

func TestStaffCreate_DuplicateUsername(t *testing.T) {
	r, _ := staffRouter(t)

	rr := doRequest(t, r, "POST", "/staff", map[string]string{
		"username":  "john", // the fixture waiter
		"full_name": "Another John",
		"role":      enum.RoleWaiter,
		"pin":       "5555",
	})
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}

func TestStaffUpdate(t *testing.T) {
	r, f := staffRouter(t)

	rr := doRequest(t, r, "PUT", "/staff/"+f.waiterID.String(), map[string]string{
		"username":  "john",
		"full_name": "John Senior Waiter",
		"role":      enum.RoleWaiter,
		"pin":       "1111",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["full_name"]; got != "John Senior Waiter" {
		t.Errorf("full_name = %v, want John Senior Waiter", got)
	}
}

func TestStaffDelete_SoftDeletes(t *testing.T) {
	r, f := staffRouter(t)

	rr := doRequest(t, r, "DELETE", "/staff/"+f.waiterID.String(), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}

	list := doRequest(t, r, "GET", "/staff", nil)
	if users := decodeJSONList(t, list); len(users) != 0 {
		t.Errorf("active staff = %d, want 0", len(users))
	}

	// Deactivated accounts cannot log in by PIN.
	if _, err := f.users.GetByPin("1111"); err == nil {
		t.Error("expected PIN lookup to fail for a deactivated user")
	}
}

func TestStaffDelete_NotFound(t *testing.T) {
	r, _ := staffRouter(t)

	rr := doRequest(t, r, "DELETE", "/staff/00000000-0000-0000-0000-000000000001", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
