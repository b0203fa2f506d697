package service

import (
	"sort"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
)

// ProjectStation derives a station's live queue from the full order list and
// the routing policy. Pure function, recomputed on every read, so the queue
// can never drift out of sync with the order store.
//
// Orders in NEW or IN_PROGRESS are kept; each is narrowed to its unready
// items owned by the station; orders left with no items are dropped; the
// result is oldest-first (FIFO ticket discipline).
func ProjectStation(orders []model.Order, policy model.RoutingPolicy, station string) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if o.Status != enum.OrderStatusNew && o.Status != enum.OrderStatusInProgress {
			continue
		}
		var items []model.OrderItem
		for _, it := range o.Items {
			if !it.IsReady && policy.Owns(station, it.Dish.Category) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		o.Items = items
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
