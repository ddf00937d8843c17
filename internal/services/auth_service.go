package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/constants"
	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
)

// Mailer sends transactional email. Delivery is always best effort: a mail
// failure never fails the request that triggered it.
type Mailer interface {
	Configured() bool
	SendVerification(toEmail, token string) error
	SendPasswordReset(toEmail, token, name string) error
	SendHouseholdInvitation(toEmail, householdName, inviteCode, inviterName string) error
}

// AuthService handles user registration and authentication
type AuthService struct {
	userRepo repository.UserRepository
	mailer   Mailer
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, mailer Mailer, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// Register creates a new user account and sends a verification email.
func (s *AuthService) Register(email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if len(password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	user := &models.User{
		Email:             email,
		PasswordHash:      string(hash),
		FullName:          strings.TrimSpace(fullName),
		VerificationToken: token,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.mailer.Configured() {
		if err := s.mailer.SendVerification(user.Email, token); err != nil {
			s.logger.Warn("failed to send verification email",
				"user_id", user.ID, "error", err)
		}
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and returns the user.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns the user with the given ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

// VerifyEmail marks the account holding the token as verified and consumes
// the token.
func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	user.IsVerified = true
	user.VerificationToken = ""
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return nil
}

// RequestPasswordReset issues a reset token valid for one hour. It succeeds
// silently for unknown emails so the endpoint cannot be used to probe for
// accounts.
func (s *AuthService) RequestPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(time.Hour)
	user.PasswordResetToken = token
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.mailer.Configured() {
		if err := s.mailer.SendPasswordReset(user.Email, token, user.FullName); err != nil {
			s.logger.Warn("failed to send password reset email",
				"user_id", user.ID, "error", err)
		}
	}

	return nil
}

// ResetPassword sets a new password for the account holding a valid reset
// token and consumes the token.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset", "user_id", user.ID)
	return nil
}
