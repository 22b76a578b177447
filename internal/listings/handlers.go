// internal/listings/handlers.go
package listings

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

// Search handles GET /api/v1/listings/search. Query parameters map to
// the filter sheet: priceMin, priceMax, maxDistanceKm, gender,
// university. Missing parameters fall back to the presets.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	criteria := h.service.DefaultCriteria()
	q := r.URL.Query()

	if v, err := strconv.ParseFloat(q.Get("priceMin"), 64); err == nil {
		criteria.PriceMin = v
	}
	if v, err := strconv.ParseFloat(q.Get("priceMax"), 64); err == nil {
		criteria.PriceMax = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxDistanceKm"), 64); err == nil {
		criteria.MaxDistanceKm = v
	}
	if g := q.Get("gender"); g != "" {
		criteria.GenderPreference = g
	}

	resp, err := h.service.Search(r.Context(), criteria, q.Get("university"))
	if err != nil {
		utils.ErrorResponse(w, "Search failed", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetAll(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to load listings", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, items, http.StatusOK)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			utils.ErrorResponse(w, "Listing not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to load listing", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, item, http.StatusOK)
}

// GetMine handles GET /api/v1/listings/mine for landlords.
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.service.GetByLandlord(r.Context(), landlordID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load listings", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, items, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.Create(r.Context(), landlordID, &req)
	if err != nil {
		utils.ErrorResponse(w, "Failed to create listing", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, item, http.StatusCreated)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.Update(r.Context(), id, landlordID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			utils.ErrorResponse(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			utils.ErrorResponse(w, "You can only edit your own listings", http.StatusForbidden)
		default:
			utils.ErrorResponse(w, "Failed to update listing", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, item, http.StatusOK)
}

// UploadPhotos handles POST /api/v1/listings/{id}/photos with a
// multipart form carrying one or more "photos" files.
func (h *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		utils.ErrorResponse(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		utils.ErrorResponse(w, "No photos provided", http.StatusBadRequest)
		return
	}

	item, err := h.service.UploadPhotos(r.Context(), id, landlordID, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			utils.ErrorResponse(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			utils.ErrorResponse(w, "You can only edit your own listings", http.StatusForbidden)
		case errors.Is(err, ErrTooManyPhotos):
			utils.ErrorResponse(w, "Photo limit reached for this listing", http.StatusBadRequest)
		default:
			utils.ErrorResponse(w, "Failed to upload photos", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, item, http.StatusOK)
}

// RemovePhoto handles DELETE /api/v1/listings/{id}/photos/{index}.
func (h *Handler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		utils.ErrorResponse(w, "Invalid photo index", http.StatusBadRequest)
		return
	}

	item, err := h.service.RemovePhoto(r.Context(), id, landlordID, index)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			utils.ErrorResponse(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, ErrPhotoNotFound):
			utils.ErrorResponse(w, "Photo not found", http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			utils.ErrorResponse(w, "You can only edit your own listings", http.StatusForbidden)
		default:
			utils.ErrorResponse(w, "Failed to remove photo", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, item, http.StatusOK)
}

// GetUniversities handles GET /api/v1/universities.
func (h *Handler) GetUniversities(w http.ResponseWriter, r *http.Request) {
	type university struct {
		Name     string     `json:"name"`
		Position [2]float64 `json:"position"`
	}

	names := Universities()
	result := make([]university, 0, len(names))
	for _, name := range names {
		result = append(result, university{Name: name, Position: UniversityPosition(name)})
	}

	utils.SuccessResponse(w, result, http.StatusOK)
}
