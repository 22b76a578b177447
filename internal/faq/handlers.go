// internal/faq/handlers.go
package faq

import (
	"net/http"

	"github.com/unistaylk/unistay-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Search handles GET /api/faq?category=...&q=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := h.service.Search(r.Context(), q.Get("category"), q.Get("q"))
	if err != nil {
		utils.ErrorResponse(w, "Failed to load FAQs", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, map[string]interface{}{
		"categories": Categories(),
		"faqs":       items,
	}, http.StatusOK)
}
