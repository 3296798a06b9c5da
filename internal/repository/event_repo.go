package repository

import (
	"errors"
	"time"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventPatch carries only the fields explicitly provided by the caller.
type EventPatch struct {
	Title         *string    `json:"title"`
	EventCategory *string    `json:"event_category"`
	EventDate     *time.Time `json:"event_date"`
	Location      *string    `json:"location"`
	Description   *string    `json:"description"`
}

type EventRepository interface {
	Create(event *models.Event) error
	Patch(id uint, patch EventPatch) (*models.Event, error)
	GetByID(id uint) (*models.Event, error)
	GetByTitleAndDate(title string, date time.Time) (*models.Event, error)
	GetAll() ([]*models.Event, error)
	Delete(id uint) error
}

type GormEventRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEventRepository(db *gorm.DB) (*GormEventRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Event{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate events table")
		return nil, err
	}

	return &GormEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormEventRepository) Create(event *models.Event) error {
	if !event.IsValid() {
		r.logger.Warn("Invalid event data")
		return errors.New("event title, category, date and location are required")
	}

	result := r.db.Create(event)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create event")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":    event.ID,
		"title": event.Title,
		"date":  event.EventDate.Format("2006-01-02"),
	}).Info("Event created")

	return nil
}

func (r *GormEventRepository) Patch(id uint, patch EventPatch) (*models.Event, error) {
	event, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.EventCategory != nil {
		updates["event_category"] = *patch.EventCategory
	}
	if patch.EventDate != nil {
		updates["event_date"] = *patch.EventDate
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		result := r.db.Model(event).Updates(updates)
		if result.Error != nil {
			r.logger.WithError(result.Error).Error("Failed to patch event")
			return nil, result.Error
		}
	}

	return r.GetByID(id)
}

func (r *GormEventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	result := r.db.First(&event, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get event by ID")
		return nil, result.Error
	}

	return &event, nil
}

// GetByTitleAndDate matches on the calendar date alone, ignoring any
// time-of-day component stored with it.
func (r *GormEventRepository) GetByTitleAndDate(title string, date time.Time) (*models.Event, error) {
	var event models.Event
	result := r.db.Where("title = ? AND DATE(event_date) = DATE(?)", title, date).First(&event)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get event by title and date")
		return nil, result.Error
	}

	return &event, nil
}

func (r *GormEventRepository) GetAll() ([]*models.Event, error) {
	var events []*models.Event
	result := r.db.Order("id").Find(&events)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list events")
		return nil, result.Error
	}

	return events, nil
}

// Delete removes an event; its shifts and their attendance follow via FK cascade.
func (r *GormEventRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Event{}, id)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete event")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.WithField("id", id).Info("Event deleted")
	return nil
}
