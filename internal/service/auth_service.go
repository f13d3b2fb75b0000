package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guestbook/internal/auth"
	apperrors "guestbook/internal/errors"
	"guestbook/internal/mail"
	"guestbook/internal/repository"
)

const (
	// maxLoginAttempts is the failed-attempt threshold at which an account locks.
	maxLoginAttempts = 5
	// passwordHashCost is the bcrypt work factor for stored credentials.
	passwordHashCost = 12
)

// AuthService guards authentication: login throttling and lockout, account
// activation, and the password reset flow.
type AuthService interface {
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, error)
	// Activate marks the account active. alreadyActive reports an idempotent
	// call on an account that needed no mutation.
	Activate(ctx context.Context, email string) (alreadyActive bool, err error)
	// ForgotPassword issues a reset token and mails the reset link.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword validates a reset token and overwrites the stored credential.
	ResetPassword(ctx context.Context, token, password, confirmPassword string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *auth.TokenService
	mailer   mail.Mailer
	resetURL string
}

// NewAuthService creates the authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, mailer mail.Mailer, resetURL string) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: resetURL,
	}
}

// Login runs the login state machine. Checks short-circuit in strict order:
// presence, existence, active, locked, credential. Attempt counters and the
// lock flag are persisted before any failure is returned, and a later failure
// never rolls an earlier persist back.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.New("Username and password are required.", http.StatusBadRequest)
	}

	user, err := s.users.FindByEmailWithPassword(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a wrong password, so callers cannot probe for accounts
			return "", apperrors.New("Invalid email or password.", http.StatusBadRequest)
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if !user.Status {
		return "", apperrors.New("Your account has been inactivated.", http.StatusBadRequest)
	}
	if user.IsLocked {
		return "", apperrors.New("Your account has been locked.", http.StatusBadRequest)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.LoginAttempts++

		if user.LoginAttempts >= maxLoginAttempts {
			user.IsLocked = true
			if err := s.users.UpdateLoginState(ctx, user.ID, user.LoginAttempts, true); err != nil {
				return "", fmt.Errorf("persist account lock: %w", err)
			}
			return "", apperrors.New("Your account has been locked.", http.StatusBadRequest)
		}

		remaining := maxLoginAttempts - user.LoginAttempts
		if err := s.users.UpdateLoginState(ctx, user.ID, user.LoginAttempts, false); err != nil {
			return "", fmt.Errorf("persist login attempts: %w", err)
		}
		noun := "Attempts"
		if remaining == 1 {
			noun = "Attempt"
		}
		return "", apperrors.New(
			fmt.Sprintf("Invalid email or password - %d %s Remaining.", remaining, noun),
			http.StatusBadRequest,
		)
	}

	// Successful authentication always clears the counter and the lock,
	// even when the role lookup below still fails the login.
	if err := s.users.UpdateLoginState(ctx, user.ID, 0, false); err != nil {
		return "", fmt.Errorf("reset login attempts: %w", err)
	}

	withRole, err := s.users.FindByIDWithRole(ctx, user.ID)
	if err != nil || withRole.Role == nil {
		return "", apperrors.New("User role not found", http.StatusBadRequest)
	}

	token, err := s.tokens.GenerateSessionToken(user, withRole.Role.Name)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Activate flips the account's active flag. Activating an already-active
// account succeeds without mutation.
func (s *authService) Activate(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, apperrors.New("Email is required.", http.StatusBadRequest)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.New("User not found", http.StatusNotFound)
		}
		return false, fmt.Errorf("find user by email: %w", err)
	}

	if user.Status {
		return true, nil
	}

	if err := s.users.UpdateStatus(ctx, user.ID, true); err != nil {
		return false, fmt.Errorf("activate user: %w", err)
	}
	return false, nil
}

// ForgotPassword issues a 1-hour reset token bound to the account and mails
// the reset link. A dispatch failure is unrecoverable: the caller has already
// committed to this path and there is no compensating action.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.New("Email is required.", http.StatusBadRequest)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New("No user found with that email.", http.StatusNotFound)
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	token, err := s.tokens.GenerateResetToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	resetLink := s.resetURL + "/reset-password/" + token
	subject, body := mail.ForgotPasswordMessage(user.FirstName, resetLink)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword validates the reset token, resolves the account by the
// (id, email) pair it carries, and overwrites the stored credential. The
// token stays replayable until natural expiry; no revocation list exists.
func (s *authService) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	if password == "" || confirmPassword == "" {
		return apperrors.New("Password and confirm password are required.", http.StatusBadRequest)
	}
	if password != confirmPassword {
		return apperrors.New("Passwords do not match.", http.StatusBadRequest)
	}

	// every verification failure maps to the same opaque error
	claims, err := s.tokens.ValidateResetToken(token)
	if err != nil {
		return apperrors.New("Token is invalid or has expired.", http.StatusBadRequest)
	}

	user, err := s.users.FindByIDAndEmail(ctx, claims.UserID, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New("User not found.", http.StatusNotFound)
		}
		return fmt.Errorf("find user by token claims: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("persist new password: %w", err)
	}
	return nil
}
