package service

import (
	"fmt"
	"strings"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"

	"github.com/sirupsen/logrus"
)

type VolunteerService struct {
	repo   repository.VolunteerRepository
	logger *logrus.Logger
}

func NewVolunteerService(repo repository.VolunteerRepository) *VolunteerService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &VolunteerService{repo: repo, logger: logger}
}

func (s *VolunteerService) Create(volunteer *models.Volunteer) (*models.Volunteer, error) {
	volunteer.FullName = strings.TrimSpace(volunteer.FullName)
	if volunteer.FullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrValidation)
	}

	if err := s.repo.Create(volunteer); err != nil {
		return nil, err
	}
	return volunteer, nil
}

func (s *VolunteerService) Get(id uint) (*models.Volunteer, error) {
	volunteer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, fmt.Errorf("%w: volunteer not found", ErrNotFound)
	}
	return volunteer, nil
}

func (s *VolunteerService) List() ([]*models.Volunteer, error) {
	return s.repo.GetAll()
}

// Patch applies only the provided fields to an existing volunteer.
func (s *VolunteerService) Patch(id uint, patch repository.VolunteerPatch) (*models.Volunteer, error) {
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name cannot be blank", ErrValidation)
	}

	volunteer, err := s.repo.Patch(id, patch)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, fmt.Errorf("%w: volunteer not found", ErrNotFound)
	}
	return volunteer, nil
}

// Delete removes a volunteer along with their attendance history.
func (s *VolunteerService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: volunteer not found", ErrNotFound)
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("id", id).Info("Volunteer removed with attendance history")
	return nil
}
