// internal/verification/handlers.go
package verification

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/unistaylk/unistay-backend/internal/auth"
	"github.com/unistaylk/unistay-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/v1/verification as a multipart form with
// fields nic, studentId and files nicPhoto, studentIdPhoto.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := auth.GetRoleFromContext(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.ErrorResponse(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	req := &SubmitRequest{
		Role:            role,
		NIC:             r.FormValue("nic"),
		StudentIDNumber: r.FormValue("studentId"),
	}

	if files := r.MultipartForm.File["nicPhoto"]; len(files) > 0 {
		req.NICPhoto = files[0]
	}
	if files := r.MultipartForm.File["studentIdPhoto"]; len(files) > 0 {
		req.StudentIDPhoto = files[0]
	}

	v, err := h.service.Submit(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingNIC):
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAlreadySubmitted):
			utils.ErrorResponse(w, err.Error(), http.StatusConflict)
		default:
			utils.ErrorResponse(w, "Failed to submit verification", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, v, http.StatusCreated)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	v, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrVerificationNotFound) {
			utils.ErrorResponse(w, "No verification submitted", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to load verification", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, v, http.StatusOK)
}

// GetPending handles GET /api/v1/verification/pending for reviewers.
func (h *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetPending(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to load pending verifications", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, items, http.StatusOK)
}

// Review handles PUT /api/v1/verification/{id}/review for reviewers.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid verification ID", http.StatusBadRequest)
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.service.Review(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrVerificationNotFound) {
			utils.ErrorResponse(w, "Verification not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to review verification", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, v, http.StatusOK)
}
