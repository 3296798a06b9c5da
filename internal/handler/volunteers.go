package handler

import (
	"encoding/json"
	"net/http"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"
)

type VolunteerCreateRequest struct {
	VolunteerNo *string `json:"volunteer_no"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Notes       *string `json:"notes"`
}

func (h *Handler) CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req VolunteerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	volunteer, err := h.volunteerService.Create(&models.Volunteer{
		VolunteerNo: req.VolunteerNo,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, volunteer)
}

func (h *Handler) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := h.volunteerService.List()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, volunteers)
}

func (h *Handler) GetVolunteer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid volunteer ID")
		return
	}

	volunteer, err := h.volunteerService.Get(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, volunteer)
}

func (h *Handler) PatchVolunteer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid volunteer ID")
		return
	}

	var patch repository.VolunteerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	volunteer, err := h.volunteerService.Patch(id, patch)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, volunteer)
}

func (h *Handler) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid volunteer ID")
		return
	}

	if err := h.volunteerService.Delete(id); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
