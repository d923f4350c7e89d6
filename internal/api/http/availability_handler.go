package http

import (
	"net/http"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/service"
)

// AvailabilityHandler serves remaining-quantity lookups
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

type availabilityResponse struct {
	ProductID int64                 `json:"product_id"`
	Interval  domain.RentalInterval `json:"interval"`
	Available int64                 `json:"available"`
}

// HandleCheck handles GET /products/{id}/availability?start=...&end=...
func (h *AvailabilityHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	start, err := queryTime(r, "start")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	end, err := queryTime(r, "end")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	interval := domain.RentalInterval{Start: start, End: end}
	available, err := h.availability.CheckAvailability(r.Context(), productID, interval)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		ProductID: productID,
		Interval:  interval,
		Available: available,
	})
}
