// internal/profile/routes.go
package profile

import (
	"github.com/gorilla/mux"

	"github.com/unistaylk/unistay-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate)

	api.HandleFunc("/profile", handler.GetProfile).Methods("GET")
	api.HandleFunc("/profile", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile/university", handler.SetUniversity).Methods("PUT")
}
