// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/config"
	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/utils"
)

type AuthService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"` // in seconds
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *AuthService {
	return &AuthService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

// Register creates a customer account. The account is usable immediately;
// email verification is requested but never gates login, and a failed
// verification mail does not fail the registration.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existingUser models.User
	if err := s.db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return nil, ErrEmailTaken
	}

	verificationToken, err := utils.GenerateSecurityToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	verificationExpires := time.Now().Add(24 * time.Hour)

	user := &models.User{
		Name:                     req.Name,
		Email:                    email,
		Phone:                    req.Phone,
		Role:                     models.UserRoleCustomer,
		IsActive:                 true,
		EmailVerificationToken:   verificationToken,
		EmailVerificationExpires: &verificationExpires,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Send verification email (async); delivery failure is logged inside
	// the notification service and never aborts the registration.
	if s.notificationService != nil {
		go s.notificationService.SendVerificationEmail(user, verificationToken)
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.cfg.JWT.TokenTTL * 3600,
	}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the identical error so accounts cannot be enumerated.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredential
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      &user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.cfg.JWT.TokenTTL * 3600,
	}, nil
}

// ForgotPassword issues a one-hour single-use reset token. The caller gets
// the same answer whether or not the email exists.
func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		// Don't reveal whether the email exists
		return nil
	}

	resetToken, err := utils.GenerateSecurityToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(1 * time.Hour)
	user.PasswordResetToken = resetToken
	user.PasswordResetExpires = &expires

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	if s.notificationService != nil {
		go s.notificationService.SendPasswordResetEmail(&user, resetToken)
	}

	return nil
}

// ResetPassword consumes the reset token; it is invalidated whether or not
// the password update succeeds.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var user models.User
	if err := s.db.Where("password_reset_token = ?", req.Token).First(&user).Error; err != nil {
		return ErrInvalidToken
	}

	expired := user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires)

	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	if expired {
		s.db.Save(&user)
		return ErrInvalidToken
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		s.db.Save(&user)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	var user models.User
	if err := s.db.Where("email_verification_token = ?", token).First(&user).Error; err != nil {
		return ErrInvalidToken
	}

	if user.EmailVerificationExpires == nil || time.Now().After(*user.EmailVerificationExpires) {
		return ErrInvalidToken
	}

	user.EmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
