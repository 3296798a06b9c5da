package handler

import (
	"encoding/csv"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"volunteer-hub/internal/service"
)

type ImportResponse struct {
	Volunteers service.Summary `json:"volunteers"`
	Events     service.Summary `json:"events"`
	Attendance service.Summary `json:"attendance"`
}

// csvRows decodes an uploaded CSV file into string-keyed rows. The first
// record is the header; a UTF-8 BOM on the first column is stripped.
func csvRows(file multipart.File) ([]service.Row, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows []service.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := service.Row{}
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (h *Handler) uploadRows(r *http.Request, field string) ([]service.Row, error) {
	file, _, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return csvRows(file)
}

// AdminImport ingests up to three CSV files in one request. Each file is one
// batch: bad rows are counted per batch, a store fault fails the request.
func (h *Handler) AdminImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	volunteerRows, err := h.uploadRows(r, "volunteers_file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read volunteers file")
		return
	}
	eventRows, err := h.uploadRows(r, "events_file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read events file")
		return
	}
	attendanceRows, err := h.uploadRows(r, "attendance_file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read attendance file")
		return
	}

	var response ImportResponse

	if response.Volunteers, err = h.importService.ImportVolunteers(volunteerRows); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Volunteer import failed")
		return
	}
	if response.Events, err = h.importService.ImportEvents(eventRows); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Event import failed")
		return
	}
	if response.Attendance, err = h.importService.ImportAttendance(attendanceRows); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Attendance import failed")
		return
	}

	h.logger.WithField("response", response).Info("Admin import completed")

	respondWithJSON(w, http.StatusOK, response)
}
