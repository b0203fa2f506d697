package handler

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportsOrders defines the order methods needed by report handlers.
// Satisfied by *store.OrderStore; narrow interface for testability.
type ReportsOrders interface {
	List(f store.OrderFilter) []model.Order
}

// ReportsHandler computes sales reports from completed orders.
type ReportsHandler struct {
	orders ReportsOrders
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(orders ReportsOrders) *ReportsHandler {
	return &ReportsHandler{orders: orders}
}

// RegisterRoutes registers report endpoints. Mounted at /reports.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily-summary", h.DailySummary)
	r.Get("/top-dishes", h.TopDishes)
}

// --- Response types ---

type dailySummaryResponse struct {
	Date            string `json:"date"`
	OrderCount      int    `json:"order_count"`
	CancelledCount  int    `json:"cancelled_count"`
	GuestCount      int32  `json:"guest_count"`
	TotalRevenue    string `json:"total_revenue"`
	AverageOrder    string `json:"average_order"`
	AverageCoverAmt string `json:"average_per_guest"`
}

type topDishResponse struct {
	DishID       uuid.UUID             `json:"dish_id"`
	Name         model.LocalizedString `json:"name"`
	Category     string                `json:"category"`
	QuantitySold int32                 `json:"quantity_sold"`
	TotalRevenue string                `json:"total_revenue"`
}

// --- Handlers ---

// DailySummary returns per-day totals over completed orders for a date range.
func (h *ReportsHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	type bucket struct {
		orders    int
		cancelled int
		guests    int32
		revenue   decimal.Decimal
	}
	buckets := map[string]*bucket{}

	for _, o := range h.orders.List(store.OrderFilter{}) {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		switch o.Status {
		case enum.OrderStatusCancelled:
			b.cancelled++
		case enum.OrderStatusCompleted:
			b.orders++
			b.guests += o.GuestCount
			b.revenue = b.revenue.Add(o.Total())
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	resp := make([]dailySummaryResponse, len(days))
	for i, day := range days {
		b := buckets[day]
		avgOrder := decimal.Zero
		if b.orders > 0 {
			avgOrder = b.revenue.Div(decimal.NewFromInt(int64(b.orders)))
		}
		avgGuest := decimal.Zero
		if b.guests > 0 {
			avgGuest = b.revenue.Div(decimal.NewFromInt(int64(b.guests)))
		}
		resp[i] = dailySummaryResponse{
			Date:            day,
			OrderCount:      b.orders,
			CancelledCount:  b.cancelled,
			GuestCount:      b.guests,
			TotalRevenue:    b.revenue.StringFixed(2),
			AverageOrder:    avgOrder.StringFixed(2),
			AverageCoverAmt: avgGuest.StringFixed(2),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// TopDishes returns the best selling dishes by quantity over completed orders.
func (h *ReportsHandler) TopDishes(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	type tally struct {
		dish     model.Dish
		quantity int32
		revenue  decimal.Decimal
	}
	tallies := map[uuid.UUID]*tally{}

	for _, o := range h.orders.List(store.OrderFilter{Status: enum.OrderStatusCompleted}) {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		for _, item := range o.Items {
			t := tallies[item.Dish.ID]
			if t == nil {
				t = &tally{dish: item.Dish}
				tallies[item.Dish.ID] = t
			}
			t.quantity += item.Quantity
			t.revenue = t.revenue.Add(item.Dish.Price.Mul(decimal.NewFromInt32(item.Quantity)))
		}
	}

	ranked := make([]*tally, 0, len(tallies))
	for _, t := range tallies {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].quantity != ranked[j].quantity {
			return ranked[i].quantity > ranked[j].quantity
		}
		return ranked[i].revenue.GreaterThan(ranked[j].revenue)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	resp := make([]topDishResponse, len(ranked))
	for i, t := range ranked {
		resp[i] = topDishResponse{
			DishID:       t.dish.ID,
			Name:         t.dish.Name,
			Category:     t.dish.Category,
			QuantitySold: t.quantity,
			TotalRevenue: t.revenue.StringFixed(2),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// parseDateRange parses start_date and end_date query params.
// Defaults to the last 30 days. The returned end is exclusive (next day midnight).
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -30)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		start = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		end = t.AddDate(0, 0, 1)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return start, end, nil
}
