package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/stationops/roster-service/docs" //nolint:revive,nolintlint
	"github.com/stationops/roster-service/internal/entity"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Recover, mw.Cors, mw.WithIP, mw.Log)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", h.Health)
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		})

		r.Route("/v1", func(r chi.Router) {
			r.Use(mw.Auth)

			r.Get("/me", h.Me)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(entity.RoleAdmin))

				r.Post("/employees", h.CreateEmployee)
				r.Get("/employees", h.EmployeesList)
				r.Get("/employees/{id}", h.EmployeeByID)
				r.Put("/employees/{id}", h.UpdateEmployee)
				r.Delete("/employees/{id}", h.DeactivateEmployee)

				r.Get("/roles", h.RolesList)
				r.Get("/permissions", h.PermissionsList)
			})
		})
	})

	return router
}
