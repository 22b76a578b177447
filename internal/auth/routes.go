// internal/auth/routes.go
package auth

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *Middleware, enableOAuth bool) {
	// Public auth routes
	router.HandleFunc("/api/auth/signup", handler.Signup).Methods("POST")
	router.HandleFunc("/api/auth/signin", handler.Signin).Methods("POST")
	router.HandleFunc("/api/auth/refresh", handler.Refresh).Methods("POST")
	router.HandleFunc("/api/auth/logout", handler.Logout).Methods("POST")

	if enableOAuth {
		router.HandleFunc("/api/auth/google", handler.GoogleAuth).Methods("POST")
	}

	// Protected
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate)
	api.HandleFunc("/me", handler.Me).Methods("GET")
}
