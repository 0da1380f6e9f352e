/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the intranet frontend

ROUTE GROUPS:
  /api/leave/*          Eligibility validation and conflict checks
  /api/employees/*      Employee records, entitlement, schedules
  /api/departments/*    Org units and rosters
  /api/schedules/*      Booking and lifecycle
  /api/scenarios/*      Demo scenarios (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public;
  the intranet gateway in front of this service handles auth.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Leave engine routes
		r.Route("/leave", func(r chi.Router) {
			r.Post("/validate", h.ValidateLeave)
			r.Post("/conflicts", h.CheckConflicts)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/entitlement", h.GetEntitlement)
			r.Get("/{id}/schedules", h.ListSchedulesForUser)
		})

		// Department routes
		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.ListDepartments)
			r.Post("/", h.CreateDepartment)
			r.Get("/{id}/roster", h.GetDepartmentRoster)
		})

		// Schedule routes
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", h.CreateSchedule)
			r.Put("/{id}/status", h.UpdateScheduleStatus)
		})

		// Scenario routes (dev/demo only)
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
