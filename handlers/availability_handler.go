package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/matchday-system/services"
)

type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

func NewAvailabilityHandler(availabilityService services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// ResolveDay returns the slot grid for one pitch and one calendar day.
// GET /pitches/{pitchID}/availability?date=2026-09-01
// The viewer is optional: an anonymous viewer never sees open_for_team slots
// as joinable for their own team, because they have none.
func (h *AvailabilityHandler) ResolveDay(w http.ResponseWriter, r *http.Request) {
	pitchID, err := urlParam(r, "pitchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		badRequestResponse(w, r, errors.New("date query parameter is required"))
		return
	}
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	viewer, _ := sessionFrom(r)

	slots, err := h.availabilityService.ResolveDay(r.Context(), pitchID, day, viewer)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"slots": slots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
