// internal/listings/routes.go
package listings

import (
	"github.com/gorilla/mux"

	"github.com/unistaylk/unistay-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate)

	// Student catalog
	api.HandleFunc("/listings", handler.GetAll).Methods("GET")
	api.HandleFunc("/listings/search", handler.Search).Methods("GET")
	api.HandleFunc("/universities", handler.GetUniversities).Methods("GET")

	// Landlord management
	landlord := api.PathPrefix("").Subrouter()
	landlord.Use(middleware.RequireRole("landlord"))
	landlord.HandleFunc("/listings", handler.Create).Methods("POST")
	landlord.HandleFunc("/listings/mine", handler.GetMine).Methods("GET")
	landlord.HandleFunc("/listings/{id:[0-9]+}", handler.Update).Methods("PATCH")
	landlord.HandleFunc("/listings/{id:[0-9]+}/photos", handler.UploadPhotos).Methods("POST")
	landlord.HandleFunc("/listings/{id:[0-9]+}/photos/{index:[0-9]+}", handler.RemovePhoto).Methods("DELETE")

	// Keep the detail route after /listings/mine and /listings/search so
	// mux matches the literal paths first
	api.HandleFunc("/listings/{id:[0-9]+}", handler.GetByID).Methods("GET")
}
