package handler

import (
	"encoding/json"
	"net/http"
	"time"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"
)

type EventCreateRequest struct {
	Title         string  `json:"title"`
	EventCategory string  `json:"event_category"`
	EventDate     string  `json:"event_date"`
	Location      string  `json:"location"`
	Description   *string `json:"description"`
}

type EventPatchRequest struct {
	Title         *string `json:"title"`
	EventCategory *string `json:"event_category"`
	EventDate     *string `json:"event_date"`
	Location      *string `json:"location"`
	Description   *string `json:"description"`
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "event_date must be a valid ISO date")
		return
	}

	event, err := h.eventService.Create(&models.Event{
		Title:         req.Title,
		EventCategory: req.EventCategory,
		EventDate:     eventDate,
		Location:      req.Location,
		Description:   req.Description,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.eventService.Get(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

func (h *Handler) PatchEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var req EventPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	patch := repository.EventPatch{
		Title:         req.Title,
		EventCategory: req.EventCategory,
		Location:      req.Location,
		Description:   req.Description,
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "event_date must be a valid ISO date")
			return
		}
		patch.EventDate = &eventDate
	}

	event, err := h.eventService.Patch(id, patch)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(id); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
