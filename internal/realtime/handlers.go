// internal/realtime/handlers.go
package realtime

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/unistaylk/unistay-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Mobile clients connect from app webviews with no Origin header
		return true
	},
}

// TokenValidator checks an access token and returns its claims. The
// auth service satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

type Handler struct {
	hub  *Hub
	auth TokenValidator
}

func NewHandler(hub *Hub, auth TokenValidator) *Handler {
	return &Handler{hub: hub, auth: auth}
}

// ServeWS handles GET /ws?token=<access token>. Websocket clients
// cannot set headers, so the token travels as a query parameter.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.ErrorResponse(w, "Missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.auth.ValidateToken(r.Context(), token)
	if err != nil || claims.Type != "access" {
		utils.ErrorResponse(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	h.hub.register <- client
	client.Start()
}
