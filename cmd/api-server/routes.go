package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)

	mux.Get("/api/v1/status", app.handleStatus)

	mux.Post("/api/v1/parking/register", app.handleEntrance)
	mux.Post("/api/v1/parking/leave", app.handleDeparture)
	mux.Get("/api/v1/parking/registers", app.handleAllSessions)

	mux.Get("/api/v1/parking/vehicles", app.handleListVehicles)
	mux.Post("/api/v1/parking/vehicles", app.handleRegisterVehicle)
	mux.Put("/api/v1/parking/vehicles/{vehicleId}", app.handleUpdateVehicle)
	mux.Get("/api/v1/parking/vehicles/{vehicleId}/fee", app.handleFee)

	mux.Post("/api/v1/parking/rollover", app.handleRollover)
	mux.Get("/api/v1/parking/reports/monthly", app.handleMonthlyReport)

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
