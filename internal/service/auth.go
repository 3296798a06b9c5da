package service

import (
	"fmt"
	"strings"
	"time"
	"volunteer-hub/internal/config"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.ServerConfig
	logger   *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.ServerConfig) *AuthService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates a new authentication principal. Only the very first
// registered user may self-assign the admin role; later admin requests are
// demoted to organiser.
func (s *AuthService) Register(name, email, password, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	if role != models.RoleAdmin && role != models.RoleOrganiser {
		role = models.RoleOrganiser
	}
	if role == models.RoleAdmin {
		count, err := s.userRepo.Count()
		if err != nil {
			return nil, err
		}
		if count > 0 {
			role = models.RoleOrganiser
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}).Info("User registered")

	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("Failed login attempt")
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
	}).Info("User logged in")

	return token, user, nil
}

// GenerateToken signs an HS256 token carrying the user identity and role.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Duration(s.cfg.TokenTTLMinutes) * time.Minute).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// BootstrapAdmin creates the configured admin account once at startup.
// It is a no-op when the credentials are unset or the account exists.
func (s *AuthService) BootstrapAdmin() error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	existing, err := s.userRepo.GetByEmail(s.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        s.cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	s.logger.WithField("email", admin.Email).Info("Bootstrap admin created")
	return nil
}
