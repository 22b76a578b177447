// internal/bookings/routes.go
package bookings

import (
	"github.com/gorilla/mux"

	"github.com/unistaylk/unistay-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate)

	// Student side
	student := api.PathPrefix("").Subrouter()
	student.Use(middleware.RequireRole("student"))
	student.HandleFunc("/bookings", handler.Create).Methods("POST")
	student.HandleFunc("/bookings/mine", handler.GetMine).Methods("GET")

	// Landlord side
	landlord := api.PathPrefix("").Subrouter()
	landlord.Use(middleware.RequireRole("landlord"))
	landlord.HandleFunc("/bookings/requests", handler.GetRequests).Methods("GET")
	landlord.HandleFunc("/bookings/{id:[0-9]+}/status", handler.UpdateStatus).Methods("PUT")
	landlord.HandleFunc("/dashboard/landlord", handler.Dashboard).Methods("GET")
}
