// internal/faq/routes.go
package faq

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers the public help centre route. No auth: the
// help screen is reachable before sign-in.
func RegisterRoutes(router *mux.Router, handler *Handler) {
	router.HandleFunc("/api/faq", handler.Search).Methods("GET")
}
