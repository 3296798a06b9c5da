package handler

import (
	"encoding/json"
	"net/http"
	"time"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"
)

type ShiftCreateRequest struct {
	Title              string    `json:"title"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	RequiredVolunteers int       `json:"required_volunteers"`
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var req ShiftCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	shift, err := h.eventService.CreateShift(eventID, &models.Shift{
		Title:              req.Title,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		RequiredVolunteers: req.RequiredVolunteers,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, shift)
}

func (h *Handler) ListEventShifts(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	shifts, err := h.eventService.ListShifts(eventID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	shift, err := h.eventService.GetShift(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, shift)
}

func (h *Handler) PatchShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	var patch repository.ShiftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	shift, err := h.eventService.PatchShift(id, patch)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	if err := h.eventService.DeleteShift(id); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
