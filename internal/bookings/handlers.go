// internal/bookings/handlers.go
package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/unistaylk/unistay-backend/internal/auth"
	"github.com/unistaylk/unistay-backend/internal/common/utils"
	"github.com/unistaylk/unistay-backend/internal/listings"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	studentID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.service.Create(r.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrListingNotFound):
			utils.ErrorResponse(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidMoveInDate), errors.Is(err, ErrOwnListing):
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		default:
			utils.ErrorResponse(w, "Failed to create booking", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, b, http.StatusCreated)
}

// GetMine returns the requesting student's bookings.
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	studentID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.service.GetByStudent(r.Context(), studentID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load bookings", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, items, http.StatusOK)
}

// GetRequests returns the booking requests against the landlord's
// listings.
func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.service.GetByLandlord(r.Context(), landlordID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load booking requests", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, items, http.StatusOK)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.service.UpdateStatus(r.Context(), id, landlordID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			utils.ErrorResponse(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, ErrNotYourBooking):
			utils.ErrorResponse(w, "You can only decide your own booking requests", http.StatusForbidden)
		case errors.Is(err, ErrAlreadyDecided), errors.Is(err, ErrInvalidStatus):
			utils.ErrorResponse(w, err.Error(), http.StatusConflict)
		default:
			utils.ErrorResponse(w, "Failed to update booking", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, b, http.StatusOK)
}

// Dashboard returns the landlord home screen stats.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.LandlordDashboard(r.Context(), landlordID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, stats, http.StatusOK)
}
