package service

import (
	"errors"
	"fmt"
	"time"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ComputeMinutesWorked returns the whole minutes between check-in and
// check-out, floored, never negative.
func ComputeMinutesWorked(checkedInAt, checkedOutAt time.Time) int {
	seconds := checkedOutAt.Sub(checkedInAt).Seconds()
	minutes := int(seconds) / 60
	if minutes < 0 {
		return 0
	}
	return minutes
}

type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	shiftRepo      repository.ShiftRepository
	volunteerRepo  repository.VolunteerRepository
	logger         *logrus.Logger
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	shiftRepo repository.ShiftRepository,
	volunteerRepo repository.VolunteerRepository,
) *AttendanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		volunteerRepo:  volunteerRepo,
		logger:         logger,
	}
}

// CheckIn records a volunteer's arrival for a shift. The timestamp defaults
// to now; the status defaults to present.
func (s *AttendanceService) CheckIn(shiftID, volunteerID uint, at *time.Time, status string) (*models.Attendance, error) {
	s.logger.WithFields(logrus.Fields{
		"shift_id":     shiftID,
		"volunteer_id": volunteerID,
	}).Info("Volunteer checking in")

	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, fmt.Errorf("%w: shift not found", ErrNotFound)
	}

	volunteer, err := s.volunteerRepo.GetByID(volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, fmt.Errorf("%w: volunteer not found", ErrNotFound)
	}

	if status == "" {
		status = models.StatusPresent
	}
	if !models.IsKnownStatus(status) {
		return nil, fmt.Errorf("%w: unknown attendance status %q", ErrValidation, status)
	}

	checkedInAt := time.Now()
	if at != nil {
		checkedInAt = *at
	}

	existing, err := s.attendanceRepo.GetByShiftAndVolunteer(shiftID, volunteerID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.IsCheckedIn() {
			s.logger.WithFields(logrus.Fields{
				"shift_id":     shiftID,
				"volunteer_id": volunteerID,
			}).Warn("Volunteer already checked in")
			return nil, fmt.Errorf("%w: volunteer already checked in for this shift", ErrInvalidState)
		}

		// An imported row may carry a check-out with no check-in. A later
		// check-in must not land after the recorded departure.
		if existing.IsCheckedOut() && checkedInAt.After(*existing.CheckedOutAt) {
			return nil, fmt.Errorf("%w: check-in cannot occur after recorded check-out", ErrInvalidState)
		}

		existing.CheckedInAt = &checkedInAt
		existing.Status = status
		if err := s.attendanceRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	attendance := &models.Attendance{
		ShiftID:     shiftID,
		VolunteerID: volunteerID,
		CheckedInAt: &checkedInAt,
		Status:      status,
	}

	if err := s.attendanceRepo.Create(attendance); err != nil {
		// A concurrent check-in for the same pair loses the race on the
		// unique index rather than on any app-level lock.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: volunteer already checked in for this shift", ErrInvalidState)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":           attendance.ID,
		"shift_id":     shiftID,
		"volunteer_id": volunteerID,
		"checked_in":   checkedInAt.Format("15:04"),
	}).Info("Volunteer checked in")

	return attendance, nil
}

// CheckOut records a volunteer's departure and derives minutes worked from
// the check-in/check-out pair. The transition is terminal for the pair.
func (s *AttendanceService) CheckOut(shiftID, volunteerID uint, at *time.Time) (*models.Attendance, error) {
	s.logger.WithFields(logrus.Fields{
		"shift_id":     shiftID,
		"volunteer_id": volunteerID,
	}).Info("Volunteer checking out")

	attendance, err := s.attendanceRepo.GetByShiftAndVolunteer(shiftID, volunteerID)
	if err != nil {
		return nil, err
	}
	if attendance == nil || !attendance.IsCheckedIn() {
		return nil, fmt.Errorf("%w: cannot check out without check in", ErrInvalidState)
	}
	if attendance.IsCheckedOut() {
		return nil, fmt.Errorf("%w: volunteer already checked out", ErrInvalidState)
	}

	checkedOutAt := time.Now()
	if at != nil {
		checkedOutAt = *at
	}

	if checkedOutAt.Before(*attendance.CheckedInAt) {
		s.logger.WithFields(logrus.Fields{
			"shift_id":     shiftID,
			"volunteer_id": volunteerID,
		}).Warn("Check-out before check-in rejected")
		return nil, fmt.Errorf("%w: check-out cannot occur before check-in", ErrInvalidState)
	}

	attendance.CheckedOutAt = &checkedOutAt
	attendance.MinutesWorked = ComputeMinutesWorked(*attendance.CheckedInAt, checkedOutAt)

	if err := s.attendanceRepo.Update(attendance); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":             attendance.ID,
		"shift_id":       shiftID,
		"volunteer_id":   volunteerID,
		"minutes_worked": attendance.MinutesWorked,
	}).Info("Volunteer checked out")

	return attendance, nil
}
