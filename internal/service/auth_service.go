package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/mail"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and the password reset lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	RegisterAdmin(ctx context.Context, name, email, password, adminKey string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// ForgotPassword returns the reset URL when mail transport is not
	// configured (non-production fallback); mailed reports which path was taken.
	ForgotPassword(ctx context.Context, email string) (resetURL string, mailed bool, err error)
	ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error)
}

type authService struct {
	users       repository.UserRepository
	jwtService  *auth.JWTService
	mailer      mail.Sender
	adminSecret string
	frontendURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, mailer mail.Sender, adminSecret, frontendURL string) AuthService {
	return &authService{
		users:       users,
		jwtService:  jwtService,
		mailer:      mailer,
		adminSecret: adminSecret,
		frontendURL: frontendURL,
	}
}

// Register creates a new user with hashed password and returns a session token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return s.register(ctx, name, email, password, model.RoleUser)
}

// RegisterAdmin creates an admin user when the shared bootstrap secret matches.
func (s *authService) RegisterAdmin(ctx context.Context, name, email, password, adminKey string) (*model.User, string, error) {
	if s.adminSecret == "" || adminKey != s.adminSecret {
		return nil, "", errors.ErrInvalidAdminKey
	}
	return s.register(ctx, name, email, password, model.RoleAdmin)
}

func (s *authService) register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, "", errors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a session token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, token, nil
}

// ForgotPassword starts a reset: it persists the token hash and expiry, then
// either emails the reset link or, without mail transport, returns it directly.
// Any failure after the token is persisted rolls the reset state back so no
// stale valid token stays outstanding.
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, errors.ErrUserNotFound
		}
		return "", false, fmt.Errorf("find user: %w", err)
	}

	raw, hash := auth.NewResetToken()
	expiresAt := time.Now().Add(auth.ResetTokenExpiry)
	if err := s.users.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return "", false, fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, raw)

	if !s.mailer.Configured() {
		return resetURL, false, nil
	}

	if err := s.mailer.Send(user.Email, "Password Reset Request", resetEmailBody(user.Name, resetURL)); err != nil {
		// Roll back so the failed attempt leaves no usable token behind.
		_ = s.users.ClearResetToken(ctx, user.ID)
		return "", false, errors.ErrMailDelivery
	}
	return "", true, nil
}

// ResetPassword consumes a valid reset token, sets the new password and
// returns a fresh session token.
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error) {
	user, err := s.users.FindByValidResetToken(ctx, auth.HashResetToken(rawToken), time.Now())
	if err != nil {
		return "", errors.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("update user: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return token, nil
}

func resetEmailBody(name, resetURL string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>You requested a password reset. Click the link below to choose a new password:</p>
<p><a href="%s">%s</a></p>
<p>This link expires in 15 minutes. If you did not request a reset, you can ignore this email.</p>`,
		name, resetURL, resetURL)
}
