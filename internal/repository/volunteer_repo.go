package repository

import (
	"errors"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VolunteerPatch carries only the fields explicitly provided by the caller.
// A nil field means "no change".
type VolunteerPatch struct {
	VolunteerNo *string `json:"volunteer_no"`
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Notes       *string `json:"notes"`
}

type VolunteerRepository interface {
	Create(volunteer *models.Volunteer) error
	Patch(id uint, patch VolunteerPatch) (*models.Volunteer, error)
	GetByID(id uint) (*models.Volunteer, error)
	GetAll() ([]*models.Volunteer, error)
	Delete(id uint) error
}

type GormVolunteerRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormVolunteerRepository(db *gorm.DB) (*GormVolunteerRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Volunteer{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate volunteers table")
		return nil, err
	}

	return &GormVolunteerRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormVolunteerRepository) Create(volunteer *models.Volunteer) error {
	if !volunteer.IsValid() {
		r.logger.Warn("Invalid volunteer data")
		return errors.New("volunteer full name is required")
	}

	result := r.db.Create(volunteer)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create volunteer")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":        volunteer.ID,
		"full_name": volunteer.FullName,
	}).Info("Volunteer created")

	return nil
}

func (r *GormVolunteerRepository) Patch(id uint, patch VolunteerPatch) (*models.Volunteer, error) {
	volunteer, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, nil
	}

	updates := map[string]interface{}{}
	if patch.VolunteerNo != nil {
		updates["volunteer_no"] = *patch.VolunteerNo
	}
	if patch.FullName != nil {
		updates["full_name"] = *patch.FullName
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if len(updates) > 0 {
		result := r.db.Model(volunteer).Updates(updates)
		if result.Error != nil {
			r.logger.WithError(result.Error).Error("Failed to patch volunteer")
			return nil, result.Error
		}
	}

	r.logger.WithFields(logrus.Fields{
		"id":     id,
		"fields": len(updates),
	}).Info("Volunteer patched")

	return r.GetByID(id)
}

func (r *GormVolunteerRepository) GetByID(id uint) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	result := r.db.First(&volunteer, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get volunteer by ID")
		return nil, result.Error
	}

	return &volunteer, nil
}

func (r *GormVolunteerRepository) GetAll() ([]*models.Volunteer, error) {
	var volunteers []*models.Volunteer
	result := r.db.Order("id").Find(&volunteers)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list volunteers")
		return nil, result.Error
	}

	return volunteers, nil
}

// Delete removes a volunteer; attendance records follow via the FK cascade.
func (r *GormVolunteerRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Volunteer{}, id)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete volunteer")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.WithField("id", id).Info("Volunteer deleted")
	return nil
}
