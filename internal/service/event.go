package service

import (
	"fmt"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"

	"github.com/sirupsen/logrus"
)

type EventService struct {
	eventRepo repository.EventRepository
	shiftRepo repository.ShiftRepository
	logger    *logrus.Logger
}

func NewEventService(eventRepo repository.EventRepository, shiftRepo repository.ShiftRepository) *EventService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &EventService{
		eventRepo: eventRepo,
		shiftRepo: shiftRepo,
		logger:    logger,
	}
}

func (s *EventService) Create(event *models.Event) (*models.Event, error) {
	if !event.IsValid() {
		return nil, fmt.Errorf("%w: title, event_category, event_date and location are required", ErrValidation)
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}
	return event, nil
}

func (s *EventService) List() ([]*models.Event, error) {
	return s.eventRepo.GetAll()
}

func (s *EventService) Patch(id uint, patch repository.EventPatch) (*models.Event, error) {
	event, err := s.eventRepo.Patch(id, patch)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}
	return event, nil
}

// Delete removes an event together with its shifts and their attendance.
func (s *EventService) Delete(id uint) error {
	existing, err := s.eventRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: event not found", ErrNotFound)
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("id", id).Info("Event removed with shifts and attendance")
	return nil
}

// CreateShift adds a shift to an event, enforcing start < end.
func (s *EventService) CreateShift(eventID uint, shift *models.Shift) (*models.Shift, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}

	shift.EventID = eventID
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: shift end_time must be after start_time", ErrValidation)
	}

	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *EventService) ListShifts(eventID uint) ([]*models.Shift, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}

	return s.shiftRepo.GetByEventID(eventID)
}

func (s *EventService) GetShift(id uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, fmt.Errorf("%w: shift not found", ErrNotFound)
	}
	return shift, nil
}

func (s *EventService) PatchShift(id uint, patch repository.ShiftPatch) (*models.Shift, error) {
	existing, err := s.shiftRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: shift not found", ErrNotFound)
	}

	start := existing.StartTime
	end := existing.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: shift end_time must be after start_time", ErrValidation)
	}
	if patch.RequiredVolunteers != nil && *patch.RequiredVolunteers < 0 {
		return nil, fmt.Errorf("%w: required_volunteers must be non-negative", ErrValidation)
	}

	shift, err := s.shiftRepo.Patch(id, patch)
	if err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *EventService) DeleteShift(id uint) error {
	existing, err := s.shiftRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: shift not found", ErrNotFound)
	}

	return s.shiftRepo.Delete(id)
}
