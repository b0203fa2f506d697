package router

import (
	"log"
	"net/http"

	"github.com/fattoush-pos/api/internal/config"
	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/handler"
	mw "github.com/fattoush-pos/api/internal/middleware"
	"github.com/fattoush-pos/api/internal/notify"
	"github.com/fattoush-pos/api/internal/service"
	"github.com/fattoush-pos/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Stores bundles the in-memory stores the router wires into handlers.
type Stores struct {
	Users   *store.UserStore
	Menu    *store.MenuStore
	Tables  *store.TableStore
	Orders  *store.OrderStore
	Routing *store.RoutingStore
}

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, stores Stores, orderSvc *service.OrderService, bus *notify.Bus) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(stores.Users, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Floor routes: waiters place orders and manage tables
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleWaiter, enum.RoleAdmin))

			tableHandler := handler.NewTableHandler(stores.Tables, orderSvc, bus)
			r.Route("/tables", tableHandler.RegisterRoutes)

			orderHandler := handler.NewOrderHandler(orderSvc)
			r.Route("/orders", orderHandler.RegisterRoutes)
		})

		// Station routes: kitchen and bar work their queues
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleKitchen, enum.RoleBar, enum.RoleAdmin))

			stationHandler := handler.NewStationHandler(orderSvc)
			r.Route("/stations/{station}", stationHandler.RegisterRoutes)
		})

		// Menu routes: readable by everyone, mutations admin-only,
		// toggle-stock also open to stations so they can 86 dishes
		menuHandler := handler.NewMenuHandler(stores.Menu)
		r.Route("/menu", func(r chi.Router) {
			r.Get("/dishes", menuHandler.ListDishes)
			r.Get("/pages", menuHandler.ListPages)

			r.With(mw.RequireRole(enum.RoleKitchen, enum.RoleBar, enum.RoleAdmin)).
				Post("/dishes/{id}/toggle-stock", menuHandler.ToggleStock)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(enum.RoleAdmin))
				r.Post("/dishes", menuHandler.CreateDish)
				r.Put("/dishes/{id}", menuHandler.UpdateDish)
				r.Delete("/dishes/{id}", menuHandler.DeleteDish)
				r.Post("/pages", menuHandler.CreatePage)
				r.Put("/pages/{id}", menuHandler.UpdatePage)
				r.Delete("/pages/{id}", menuHandler.DeletePage)
			})
		})

		// Settings: routing policy readable by everyone, updates admin-only
		settingsHandler := handler.NewSettingsHandler(stores.Routing)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/routing", settingsHandler.GetRouting)
			r.With(mw.RequireRole(enum.RoleAdmin)).Put("/routing", settingsHandler.UpdateRouting)
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin))

			staffHandler := handler.NewStaffHandler(stores.Users)
			r.Route("/staff", staffHandler.RegisterRoutes)

			reportsHandler := handler.NewReportsHandler(stores.Orders)
			r.Route("/reports", reportsHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
