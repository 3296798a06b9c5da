package repository

import (
	"errors"
	"time"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ShiftPatch carries only the fields explicitly provided by the caller.
type ShiftPatch struct {
	Title              *string    `json:"title"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	RequiredVolunteers *int       `json:"required_volunteers"`
}

type ShiftRepository interface {
	Create(shift *models.Shift) error
	Patch(id uint, patch ShiftPatch) (*models.Shift, error)
	GetByID(id uint) (*models.Shift, error)
	GetByEventID(eventID uint) ([]*models.Shift, error)
	Delete(id uint) error
}

type GormShiftRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftRepository(db *gorm.DB) (*GormShiftRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Shift{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shifts table")
		return nil, err
	}

	return &GormShiftRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormShiftRepository) Create(shift *models.Shift) error {
	if !shift.IsValid() {
		r.logger.WithField("event_id", shift.EventID).Warn("Invalid shift data")
		return errors.New("shift end_time must be after start_time")
	}

	result := r.db.Create(shift)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create shift")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":       shift.ID,
		"event_id": shift.EventID,
		"start":    shift.StartTime.Format("2006-01-02 15:04"),
	}).Info("Shift created")

	return nil
}

// Patch applies the provided fields; the start < end invariant is re-checked
// against the merged result before anything is written.
func (r *GormShiftRepository) Patch(id uint, patch ShiftPatch) (*models.Shift, error) {
	shift, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, nil
	}

	start := shift.StartTime
	end := shift.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	if !start.Before(end) {
		return nil, errors.New("shift end_time must be after start_time")
	}
	if patch.RequiredVolunteers != nil && *patch.RequiredVolunteers < 0 {
		return nil, errors.New("required_volunteers must be non-negative")
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.StartTime != nil {
		updates["start_time"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		updates["end_time"] = *patch.EndTime
	}
	if patch.RequiredVolunteers != nil {
		updates["required_volunteers"] = *patch.RequiredVolunteers
	}

	if len(updates) > 0 {
		result := r.db.Model(shift).Updates(updates)
		if result.Error != nil {
			r.logger.WithError(result.Error).Error("Failed to patch shift")
			return nil, result.Error
		}
	}

	return r.GetByID(id)
}

func (r *GormShiftRepository) GetByID(id uint) (*models.Shift, error) {
	var shift models.Shift
	result := r.db.First(&shift, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift by ID")
		return nil, result.Error
	}

	return &shift, nil
}

func (r *GormShiftRepository) GetByEventID(eventID uint) ([]*models.Shift, error) {
	var shifts []*models.Shift
	result := r.db.Where("event_id = ?", eventID).Order("id").Find(&shifts)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list shifts for event")
		return nil, result.Error
	}

	return shifts, nil
}

func (r *GormShiftRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Shift{}, id)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete shift")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.WithField("id", id).Info("Shift deleted")
	return nil
}
