package service

import (
	"strconv"
	"strings"
	"time"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Row is one loosely-typed tabular record keyed by column name.
type Row map[string]string

// Summary classifies every row of a batch into exactly one bucket.
type Summary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ImportService reconciles tabular batches against the store. Each batch
// commits in a single transaction: row-level validation failures are counted
// and recovered, a persistence fault aborts the whole batch.
type ImportService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewImportService(db *gorm.DB) *ImportService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ImportService{
		db:     db,
		logger: logger,
	}
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDateTime parses an ISO-style timestamp. Date-only values read as
// midnight; blank input is simply absent.
func parseDateTime(value string) (*time.Time, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil, true
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	return t, err == nil
}

// trimmed returns the trimmed cell, or nil when blank, normalizing empty
// strings to absent.
func trimmed(row Row, key string) *string {
	v := strings.TrimSpace(row[key])
	if v == "" {
		return nil
	}
	return &v
}

// ImportVolunteers reconciles volunteer rows. Dedup key is email when
// present, otherwise the full name.
func (s *ImportService) ImportVolunteers(rows []Row) (Summary, error) {
	var summary Summary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			fullName := strings.TrimSpace(row["full_name"])
			if fullName == "" {
				summary.Failed++
				continue
			}
			email := trimmed(row, "email")

			var duplicate models.Volunteer
			var lookup *gorm.DB
			if email != nil {
				lookup = tx.Where("email = ?", *email).First(&duplicate)
			} else {
				lookup = tx.Where("full_name = ?", fullName).First(&duplicate)
			}
			if lookup.Error == nil {
				summary.Skipped++
				continue
			}
			if lookup.Error != gorm.ErrRecordNotFound {
				return lookup.Error
			}

			volunteer := models.Volunteer{
				VolunteerNo: trimmed(row, "volunteer_no"),
				FullName:    fullName,
				Email:       email,
				Phone:       trimmed(row, "phone"),
				Notes:       trimmed(row, "notes"),
			}
			if err := tx.Create(&volunteer).Error; err != nil {
				return err
			}
			summary.Imported++
		}
		return nil
	})

	if err != nil {
		s.logger.WithError(err).Error("Volunteer import batch aborted")
		return Summary{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("Volunteer import finished")

	return summary, nil
}

// ImportEvents reconciles event rows. Dedup key is (title, event_date).
func (s *ImportService) ImportEvents(rows []Row) (Summary, error) {
	var summary Summary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			title := strings.TrimSpace(row["title"])
			category := strings.TrimSpace(row["event_category"])
			dateRaw := strings.TrimSpace(row["event_date"])
			location := strings.TrimSpace(row["location"])

			if title == "" || category == "" || dateRaw == "" || location == "" {
				summary.Failed++
				continue
			}

			eventDate, ok := parseDate(dateRaw)
			if !ok {
				summary.Failed++
				continue
			}

			var existing models.Event
			lookup := tx.Where("title = ? AND DATE(event_date) = DATE(?)", title, eventDate).First(&existing)
			if lookup.Error == nil {
				summary.Skipped++
				continue
			}
			if lookup.Error != gorm.ErrRecordNotFound {
				return lookup.Error
			}

			event := models.Event{
				Title:         title,
				EventCategory: category,
				EventDate:     eventDate,
				Location:      location,
				Description:   trimmed(row, "description"),
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
			summary.Imported++
		}
		return nil
	})

	if err != nil {
		s.logger.WithError(err).Error("Event import batch aborted")
		return Summary{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("Event import finished")

	return summary, nil
}

// ImportAttendance reconciles attendance rows. Dedup key is the
// (shift_id, volunteer_id) pair.
func (s *ImportService) ImportAttendance(rows []Row) (Summary, error) {
	var summary Summary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			shiftID, errShift := strconv.Atoi(strings.TrimSpace(row["shift_id"]))
			volunteerID, errVolunteer := strconv.Atoi(strings.TrimSpace(row["volunteer_id"]))
			if errShift != nil || errVolunteer != nil {
				summary.Failed++
				continue
			}

			var shift models.Shift
			if err := tx.First(&shift, shiftID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					summary.Failed++
					continue
				}
				return err
			}
			var volunteer models.Volunteer
			if err := tx.First(&volunteer, volunteerID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					summary.Failed++
					continue
				}
				return err
			}

			var existing models.Attendance
			lookup := tx.Where("shift_id = ? AND volunteer_id = ?", shiftID, volunteerID).First(&existing)
			if lookup.Error == nil {
				summary.Skipped++
				continue
			}
			if lookup.Error != gorm.ErrRecordNotFound {
				return lookup.Error
			}

			checkedInAt, okIn := parseDateTime(row["checked_in_at"])
			checkedOutAt, okOut := parseDateTime(row["checked_out_at"])
			if !okIn || !okOut {
				summary.Failed++
				continue
			}

			minutes, ok := resolveMinutes(row, checkedInAt, checkedOutAt)
			if !ok {
				summary.Failed++
				continue
			}

			if checkedInAt != nil && checkedOutAt != nil && checkedOutAt.Before(*checkedInAt) {
				summary.Failed++
				continue
			}

			// An unrecognized status string deliberately falls back to
			// present instead of failing the row.
			status := strings.ToLower(strings.TrimSpace(row["status"]))
			if !models.IsKnownStatus(status) {
				status = models.StatusPresent
			}

			attendance := models.Attendance{
				ShiftID:       uint(shiftID),
				VolunteerID:   uint(volunteerID),
				CheckedInAt:   checkedInAt,
				CheckedOutAt:  checkedOutAt,
				MinutesWorked: minutes,
				Status:        status,
			}
			if err := tx.Create(&attendance).Error; err != nil {
				return err
			}
			summary.Imported++
		}
		return nil
	})

	if err != nil {
		s.logger.WithError(err).Error("Attendance import batch aborted")
		return Summary{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("Attendance import finished")

	return summary, nil
}

// resolveMinutes picks minutes worked in priority order: an explicit
// minutes_worked column, an hours_worked column converted and truncated,
// a derivation from the timestamp pair, else zero.
func resolveMinutes(row Row, checkedInAt, checkedOutAt *time.Time) (int, bool) {
	minutesRaw := strings.TrimSpace(row["minutes_worked"])
	hoursRaw := strings.TrimSpace(row["hours_worked"])

	switch {
	case minutesRaw != "":
		minutes, err := strconv.Atoi(minutesRaw)
		if err != nil {
			return 0, false
		}
		if minutes < 0 {
			minutes = 0
		}
		return minutes, true
	case hoursRaw != "":
		hours, err := strconv.ParseFloat(hoursRaw, 64)
		if err != nil {
			return 0, false
		}
		minutes := int(hours * 60)
		if minutes < 0 {
			minutes = 0
		}
		return minutes, true
	case checkedInAt != nil && checkedOutAt != nil && !checkedOutAt.Before(*checkedInAt):
		return ComputeMinutesWorked(*checkedInAt, *checkedOutAt), true
	default:
		return 0, true
	}
}
