package repository

import (
	"errors"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Count() (int, error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	existing, err := r.GetByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("email already registered")
	}

	result := r.db.Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}).Info("User created")

	return nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by email")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) Count() (int, error) {
	var count int64
	result := r.db.Model(&models.User{}).Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count users")
		return 0, result.Error
	}

	return int(count), nil
}
