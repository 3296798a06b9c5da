package handler

import (
	"net/http"
	"strconv"
)

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	from, okFrom := dateQuery(r, "from")
	to, okTo := dateQuery(r, "to")
	if !okFrom || !okTo {
		respondWithError(w, http.StatusBadRequest, "from/to must be valid ISO dates")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	board, err := h.analyticsService.Leaderboard(from, to, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}

func (h *Handler) Awards(w http.ResponseWriter, r *http.Request) {
	from, okFrom := dateQuery(r, "from")
	to, okTo := dateQuery(r, "to")
	if !okFrom || !okTo {
		respondWithError(w, http.StatusBadRequest, "from/to must be valid ISO dates")
		return
	}

	awards, err := h.analyticsService.Awards(from, to)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, awards)
}

func (h *Handler) EventCoverage(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	coverage, err := h.analyticsService.EventCoverage(eventID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, coverage)
}

func (h *Handler) VolunteerReliability(w http.ResponseWriter, r *http.Request) {
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

	reliability, err := h.analyticsService.VolunteerReliability(volunteerID, from, to)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reliability)
}
