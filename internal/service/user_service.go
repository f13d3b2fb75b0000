package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guestbook/internal/auth"
	apperrors "guestbook/internal/errors"
	"guestbook/internal/mail"
	"guestbook/internal/model"
	"guestbook/internal/repository"
)

// RegisterInput carries the fields accepted by registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	RoleID    uuid.UUID
	Status    bool
}

// UserService handles registration and user management.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*model.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status bool) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users       repository.UserRepository
	tokens      *auth.TokenService
	mailer      mail.Mailer
	frontendURL string
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository, tokens *auth.TokenService, mailer mail.Mailer, frontendURL string) UserService {
	return &userService{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// Register creates a user inside a transaction and mails the activation link.
// Mail dispatch is fire-and-forget: a failure is logged, never surfaced.
func (s *userService) Register(ctx context.Context, input RegisterInput) error {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return apperrors.New("This email address is already in use", http.StatusBadRequest)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Status:       input.Status,
		RoleID:       input.RoleID,
	}
	if err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		return repo.Create(ctx, user)
	}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateActivationToken(user.Email)
	if err != nil {
		log.Printf("sign activation token for %s: %v", user.Email, err)
		return nil
	}
	activationLink := s.frontendURL + "/activate-account/" + token
	subject, body := mail.WelcomeMessage(user.FirstName, activationLink)
	go func() {
		if err := s.mailer.Send(user.Email, subject, body); err != nil {
			log.Printf("send welcome email to %s: %v", user.Email, err)
		}
	}()
	return nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New("User not found", http.StatusNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates only the mutable profile fields; everything else in
// the request body is ignored.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if firstName == "" {
		firstName = user.FirstName
	}
	if lastName == "" {
		lastName = user.LastName
	}
	if err := s.users.UpdateProfile(ctx, id, firstName, lastName); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	user.FirstName = firstName
	user.LastName = lastName
	return user, nil
}

func (s *userService) UpdateStatus(ctx context.Context, id uuid.UUID, status bool) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	user.Status = status
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
