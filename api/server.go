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
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*      Employee management
  /api/attendance       Attendance recording
  /api/leaves/*         Leave workflow
  /api/payroll/*        Runs, entries, contributions, payslips
  /api/holidays/*       Holiday calendar
  /api/company          Company profile
  /api/configs/*        Statutory bracket tables per year
  /api/summary          Dashboard counts
  /api/admin/*          Seed and reset (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

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
		AllowedOrigins:   h.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Get("/{id}/attendance", h.GetEmployeeAttendance)
			r.Get("/{id}/leaves", h.GetEmployeeLeaves)
			r.Get("/{id}/leave-balance", h.GetLeaveBalance)
			r.Get("/{id}/payslips", h.GetEmployeePayslips)
		})

		// Attendance routes
		r.Post("/attendance", h.RecordAttendance)

		// Leave workflow routes
		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.CreateLeave)
			r.Post("/{id}/approve", h.ApproveLeave)
			r.Post("/{id}/reject", h.RejectLeave)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Route("/runs", func(r chi.Router) {
				r.Get("/", h.ListRuns)
				r.Post("/", h.CreateRun)
				r.Get("/{id}", h.GetRun)
				r.Get("/{id}/entries", h.GetRunEntries)
				r.Post("/{id}/finalize", h.FinalizeRun)
			})
			r.Route("/entries", func(r chi.Router) {
				r.Get("/{id}", h.GetEntry)
				r.Get("/{id}/contributions", h.GetEntryContributions)
				r.Get("/{id}/payslip", h.GetEntryPayslip)
			})
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Company profile
		r.Get("/company", h.GetCompanyProfile)
		r.Put("/company", h.SaveCompanyProfile)

		// Statutory config documents
		r.Route("/configs", func(r chi.Router) {
			r.Get("/benefits/{year}", h.GetBenefitsConfig)
			r.Put("/benefits/{year}", h.SaveBenefitsConfig)
			r.Get("/tax/{year}", h.GetTaxConfig)
			r.Put("/tax/{year}", h.SaveTaxConfig)
		})

		// Dashboard counts
		r.Get("/summary", h.GetSummary)

		// Admin routes (development helpers)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/seed", h.SeedDatabase)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
