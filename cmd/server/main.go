package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/fattoush-pos/api/internal/config"
	"github.com/fattoush-pos/api/internal/model"
	"github.com/fattoush-pos/api/internal/notify"
	"github.com/fattoush-pos/api/internal/router"
	"github.com/fattoush-pos/api/internal/seed"
	"github.com/fattoush-pos/api/internal/service"
	"github.com/fattoush-pos/api/internal/store"
)

func main() {
	cfg := config.Load()

	users := store.NewUserStore()
	menu := store.NewMenuStore()
	tables := store.NewTableStore()
	orders := store.NewOrderStore()
	routing := store.NewRoutingStore(model.RoutingPolicy{})

	if err := seed.Run(users, menu, tables, routing); err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	bus := notify.NewBus()
	bus.Subscribe(func(e notify.Event) {
		if e.Type == notify.EventTableChanged {
			log.Printf("event %s: table %d status %s", e.Type, e.Table.ID, e.Table.Status)
			return
		}
		log.Printf("event %s: order %s table %d status %s", e.Type, e.Order.ID, e.Order.TableID, e.Order.Status)
	})

	orderSvc := service.NewOrderService(orders, tables, menu, routing, bus,
		cfg.EstimateBaseMinutes, cfg.EstimatePerOrderMinutes)

	r := router.New(cfg, router.Stores{
		Users:   users,
		Menu:    menu,
		Tables:  tables,
		Orders:  orders,
		Routing: routing,
	}, orderSvc, bus)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
