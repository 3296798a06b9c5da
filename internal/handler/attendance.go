package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

type CheckInRequest struct {
	VolunteerID uint       `json:"volunteer_id"`
	CheckedInAt *time.Time `json:"checked_in_at"`
	Status      string     `json:"status"`
}

type CheckOutRequest struct {
	VolunteerID  uint       `json:"volunteer_id"`
	CheckedOutAt *time.Time `json:"checked_out_at"`
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	shiftID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	attendance, err := h.attendanceService.CheckIn(shiftID, req.VolunteerID, req.CheckedInAt, req.Status)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, attendance)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	shiftID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	var req CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	attendance, err := h.attendanceService.CheckOut(shiftID, req.VolunteerID, req.CheckedOutAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, attendance)
}

// VolunteerHours returns a volunteer's per-shift minutes within an optional
// from/to date range.
func (h *Handler) VolunteerHours(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid volunteer ID")
		return
	}

	from, okFrom := dateQuery(r, "from")
	to, okTo := dateQuery(r, "to")
	if !okFrom || !okTo {
		respondWithError(w, http.StatusBadRequest, "from/to must be valid ISO dates")
		return
	}

	hours, err := h.analyticsService.VolunteerHours(volunteerID, from, to)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hours)
}
