// internal/verification/routes.go
package verification

import (
	"github.com/gorilla/mux"

	"github.com/unistaylk/unistay-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate)

	api.HandleFunc("/verification", handler.Submit).Methods("POST")
	api.HandleFunc("/verification", handler.GetStatus).Methods("GET")

	// Review endpoints are for back-office accounts
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole("admin"))
	admin.HandleFunc("/verification/pending", handler.GetPending).Methods("GET")
	admin.HandleFunc("/verification/{id:[0-9]+}/review", handler.Review).Methods("PUT")
}
