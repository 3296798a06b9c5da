package repository

import (
	"errors"
	"time"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AttendanceFilter narrows detailed listings. From/To apply to the parent
// shift's start_time, both bounds inclusive.
type AttendanceFilter struct {
	VolunteerID *uint
	From        *time.Time
	To          *time.Time
}

type AttendanceRepository interface {
	Create(attendance *models.Attendance) error
	Update(attendance *models.Attendance) error
	GetByID(id uint) (*models.Attendance, error)
	GetByShiftAndVolunteer(shiftID, volunteerID uint) (*models.Attendance, error)
	ListDetailed(filter AttendanceFilter) ([]*models.Attendance, error)
	CountCheckedInByShift(shiftID uint) (int, error)
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Attendance{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendances table")
		return nil, err
	}

	return &GormAttendanceRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create inserts a new attendance row. The unique (shift_id, volunteer_id)
// index is the authoritative guard against duplicates; a violation surfaces
// as gorm.ErrDuplicatedKey for the caller to classify.
func (r *GormAttendanceRepository) Create(attendance *models.Attendance) error {
	if !attendance.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"shift_id":     attendance.ShiftID,
			"volunteer_id": attendance.VolunteerID,
		}).Warn("Invalid attendance data")
		return errors.New("invalid attendance data")
	}

	result := r.db.Create(attendance)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			r.logger.WithError(result.Error).Error("Failed to create attendance")
		}
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":           attendance.ID,
		"shift_id":     attendance.ShiftID,
		"volunteer_id": attendance.VolunteerID,
		"status":       attendance.Status,
	}).Info("Attendance created")

	return nil
}

func (r *GormAttendanceRepository) Update(attendance *models.Attendance) error {
	if !attendance.IsValid() {
		r.logger.WithField("id", attendance.ID).Warn("Invalid attendance data for update")
		return errors.New("invalid attendance data")
	}

	attendance.UpdatedAt = time.Now()

	result := r.db.Save(attendance)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update attendance")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":             attendance.ID,
		"minutes_worked": attendance.MinutesWorked,
		"status":         attendance.Status,
	}).Info("Attendance updated")

	return nil
}

func (r *GormAttendanceRepository) GetByID(id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.First(&attendance, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance by ID")
		return nil, result.Error
	}

	return &attendance, nil
}

func (r *GormAttendanceRepository) GetByShiftAndVolunteer(shiftID, volunteerID uint) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.Where("shift_id = ? AND volunteer_id = ?", shiftID, volunteerID).First(&attendance)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance by shift and volunteer")
		return nil, result.Error
	}

	return &attendance, nil
}

// ListDetailed returns attendance rows with their volunteer, shift and event
// loaded, in insertion order.
func (r *GormAttendanceRepository) ListDetailed(filter AttendanceFilter) ([]*models.Attendance, error) {
	query := r.db.Model(&models.Attendance{}).
		Joins("JOIN shifts ON shifts.id = attendances.shift_id").
		Preload("Volunteer").
		Preload("Shift").
		Preload("Shift.Event").
		Order("attendances.id")

	if filter.VolunteerID != nil {
		query = query.Where("attendances.volunteer_id = ?", *filter.VolunteerID)
	}
	if filter.From != nil {
		query = query.Where("shifts.start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("shifts.start_time <= ?", *filter.To)
	}

	var rows []*models.Attendance
	result := query.Find(&rows)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list detailed attendance")
		return nil, result.Error
	}

	r.logger.WithField("count", len(rows)).Debug("Retrieved detailed attendance rows")

	return rows, nil
}

// CountCheckedInByShift counts attendance rows for a shift that have a
// recorded check-in.
func (r *GormAttendanceRepository) CountCheckedInByShift(shiftID uint) (int, error) {
	var count int64
	result := r.db.Model(&models.Attendance{}).
		Where("shift_id = ? AND checked_in_at IS NOT NULL", shiftID).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count checked-in attendance")
		return 0, result.Error
	}

	return int(count), nil
}
