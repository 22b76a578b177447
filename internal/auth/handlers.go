// internal/auth/handlers.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/unistaylk/unistay-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		utils.ErrorResponse(w, err.Error(), signupStatus(err))
		return
	}

	utils.SuccessResponse(w, resp, http.StatusCreated)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooManyAttempts):
			utils.ErrorResponse(w, err.Error(), http.StatusTooManyRequests)
		case errors.Is(err, ErrInvalidCredentials):
			utils.ErrorResponse(w, err.Error(), http.StatusUnauthorized)
		default:
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.GoogleAuth(r.Context(), &req)
	if err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponse(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ErrorResponse(w, "Missing authorization header", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(r.Context(), parts[1]); err != nil {
		utils.ErrorResponse(w, "Failed to logout", http.StatusInternalServerError)
		return
	}

	utils.MessageResponse(w, "Logged out", http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		return
	}

	utils.SuccessResponse(w, user, http.StatusOK)
}

func signupStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrWeakPassword):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
