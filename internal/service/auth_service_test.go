package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guestbook/internal/auth"
	apperrors "guestbook/internal/errors"
	"guestbook/internal/model"
	"guestbook/internal/repository"
)

const testSecret = "test-secret"

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDWithRole(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (*model.User, error) {
	args := m.Called(ctx, id, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, loginAttempts int, locked bool) error {
	args := m.Called(ctx, id, loginAttempts, locked)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status bool) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	args := m.Called(ctx, id, firstName, lastName)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func assertAppError(t *testing.T, err error, wantMessage string, wantStatus int) {
	t.Helper()
	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, wantMessage, appErr.Message)
		assert.Equal(t, wantStatus, appErr.StatusCode)
	}
}

func TestAuthService_Login_FailedAttempts(t *testing.T) {
	tests := []struct {
		name          string
		priorAttempts int
		wantAttempts  int
		wantLocked    bool
		wantMessage   string
	}{
		{
			name:          "first failure reports four attempts remaining",
			priorAttempts: 0,
			wantAttempts:  1,
			wantLocked:    false,
			wantMessage:   "Invalid email or password - 4 Attempts Remaining.",
		},
		{
			name:          "two prior failures report two attempts remaining",
			priorAttempts: 2,
			wantAttempts:  3,
			wantLocked:    false,
			wantMessage:   "Invalid email or password - 2 Attempts Remaining.",
		},
		{
			name:          "penultimate failure uses the singular form",
			priorAttempts: 3,
			wantAttempts:  4,
			wantLocked:    false,
			wantMessage:   "Invalid email or password - 1 Attempt Remaining.",
		},
		{
			name:          "fifth failure locks the account",
			priorAttempts: 4,
			wantAttempts:  5,
			wantLocked:    true,
			wantMessage:   "Your account has been locked.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{
				ID:            uuid.New(),
				Email:         "a@x.com",
				PasswordHash:  hashPassword(t, "right-password"),
				Status:        true,
				LoginAttempts: tt.priorAttempts,
			}

			repo := new(MockUserRepository)
			repo.On("FindByEmailWithPassword", mock.Anything, "a@x.com").Return(user, nil)
			repo.On("UpdateLoginState", mock.Anything, user.ID, tt.wantAttempts, tt.wantLocked).Return(nil)

			svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "http://localhost:3000")
			token, err := svc.Login(context.Background(), "a@x.com", "wrong-password")

			assert.Empty(t, token)
			assertAppError(t, err, tt.wantMessage, http.StatusBadRequest)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_StateGates(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		password    string
		user        *model.User
		findErr     error
		wantMessage string
	}{
		{
			name:        "missing username",
			username:    "",
			password:    "secret",
			wantMessage: "Username and password are required.",
		},
		{
			name:        "missing password",
			username:    "a@x.com",
			password:    "",
			wantMessage: "Username and password are required.",
		},
		{
			name:        "unknown email reads like a wrong password",
			username:    "ghost@x.com",
			password:    "secret",
			findErr:     gorm.ErrRecordNotFound,
			wantMessage: "Invalid email or password.",
		},
		{
			name:     "inactive account fails before credential comparison",
			username: "a@x.com",
			password: "secret",
			user: &model.User{
				ID:           uuid.New(),
				Email:        "a@x.com",
				PasswordHash: "not-even-consulted",
				Status:       false,
			},
			wantMessage: "Your account has been inactivated.",
		},
		{
			name:     "locked account fails before credential comparison",
			username: "a@x.com",
			password: "secret",
			user: &model.User{
				ID:           uuid.New(),
				Email:        "a@x.com",
				PasswordHash: "not-even-consulted",
				Status:       true,
				IsLocked:     true,
			},
			wantMessage: "Your account has been locked.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			if tt.user != nil || tt.findErr != nil {
				repo.On("FindByEmailWithPassword", mock.Anything, tt.username).Return(tt.user, tt.findErr)
			}

			svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "http://localhost:3000")
			token, err := svc.Login(context.Background(), tt.username, tt.password)

			assert.Empty(t, token)
			assertAppError(t, err, tt.wantMessage, http.StatusBadRequest)
			// state gates must not touch the attempt counter
			repo.AssertNotCalled(t, "UpdateLoginState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	user := &model.User{
		ID:            uuid.New(),
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@x.com",
		PasswordHash:  hashPassword(t, "right-password"),
		Status:        true,
		LoginAttempts: 3, // prior failures are cleared by success
		IsFirstTime:   true,
	}
	withRole := &model.User{
		ID:    user.ID,
		Email: user.Email,
		Role:  &model.Role{ID: uuid.New(), Name: "User"},
	}

	repo := new(MockUserRepository)
	repo.On("FindByEmailWithPassword", mock.Anything, "ada@x.com").Return(user, nil)
	repo.On("UpdateLoginState", mock.Anything, user.ID, 0, false).Return(nil)
	repo.On("FindByIDWithRole", mock.Anything, user.ID).Return(withRole, nil)

	tokens := auth.NewTokenService(testSecret)
	svc := NewAuthService(repo, tokens, new(MockMailer), "http://localhost:3000")

	token, err := svc.Login(context.Background(), "ada@x.com", "right-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokens.ValidateSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@x.com", claims.Email)
	assert.Equal(t, "User", claims.Role)
	assert.True(t, claims.IsFirstTime)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_RoleNotFound(t *testing.T) {
	user := &model.User{
		ID:            uuid.New(),
		Email:         "ada@x.com",
		PasswordHash:  hashPassword(t, "right-password"),
		Status:        true,
		LoginAttempts: 2,
	}

	repo := new(MockUserRepository)
	repo.On("FindByEmailWithPassword", mock.Anything, "ada@x.com").Return(user, nil)
	repo.On("UpdateLoginState", mock.Anything, user.ID, 0, false).Return(nil)
	repo.On("FindByIDWithRole", mock.Anything, user.ID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "http://localhost:3000")
	token, err := svc.Login(context.Background(), "ada@x.com", "right-password")

	assert.Empty(t, token)
	assertAppError(t, err, "User role not found", http.StatusBadRequest)
	// the counter reset persisted before the role lookup failed and stays persisted
	repo.AssertCalled(t, "UpdateLoginState", mock.Anything, user.ID, 0, false)
}

func TestAuthService_Activate(t *testing.T) {
	activeUser := &model.User{ID: uuid.New(), Email: "on@x.com", Status: true}
	inactiveUser := &model.User{ID: uuid.New(), Email: "off@x.com", Status: false}

	t.Run("missing email", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), auth.NewTokenService(testSecret), new(MockMailer), "")
		_, err := svc.Activate(context.Background(), "")
		assertAppError(t, err, "Email is required.", http.StatusBadRequest)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)
		svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "")
		_, err := svc.Activate(context.Background(), "ghost@x.com")
		assertAppError(t, err, "User not found", http.StatusNotFound)
	})

	t.Run("already active is idempotent", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "on@x.com").Return(activeUser, nil)
		svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "")

		for i := 0; i < 2; i++ {
			alreadyActive, err := svc.Activate(context.Background(), "on@x.com")
			assert.NoError(t, err)
			assert.True(t, alreadyActive)
		}
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("activates an inactive account", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "off@x.com").Return(inactiveUser, nil)
		repo.On("UpdateStatus", mock.Anything, inactiveUser.ID, true).Return(nil)
		svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "")

		alreadyActive, err := svc.Activate(context.Background(), "off@x.com")
		assert.NoError(t, err)
		assert.False(t, alreadyActive)
		repo.AssertExpectations(t)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	user := &model.User{ID: uuid.New(), FirstName: "Ben", Email: "b@y.com", Status: true}

	t.Run("missing email", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), auth.NewTokenService(testSecret), new(MockMailer), "")
		err := svc.ForgotPassword(context.Background(), "")
		assertAppError(t, err, "Email is required.", http.StatusBadRequest)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ghost@y.com").Return(nil, gorm.ErrRecordNotFound)
		svc := NewAuthService(repo, auth.NewTokenService(testSecret), new(MockMailer), "")
		err := svc.ForgotPassword(context.Background(), "ghost@y.com")
		assertAppError(t, err, "No user found with that email.", http.StatusNotFound)
	})

	t.Run("sends a reset link carrying a valid token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "b@y.com").Return(user, nil)

		mailer := new(MockMailer)
		var sentBody string
		mailer.On("Send", "b@y.com", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			sentBody = args.String(2)
		}).Return(nil)

		tokens := auth.NewTokenService(testSecret)
		svc := NewAuthService(repo, tokens, mailer, "http://localhost:3000")
		err := svc.ForgotPassword(context.Background(), "b@y.com")
		assert.NoError(t, err)

		idx := strings.Index(sentBody, "/reset-password/")
		if assert.GreaterOrEqual(t, idx, 0, "body should carry the reset link") {
			rest := sentBody[idx+len("/reset-password/"):]
			tokenStr := strings.Fields(rest)[0]
			claims, err := tokens.ValidateResetToken(tokenStr)
			assert.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, "b@y.com", claims.Email)
		}
		mailer.AssertExpectations(t)
	})

	t.Run("dispatch failure is unrecoverable", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "b@y.com").Return(user, nil)

		mailer := new(MockMailer)
		mailer.On("Send", "b@y.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		svc := NewAuthService(repo, auth.NewTokenService(testSecret), mailer, "http://localhost:3000")
		err := svc.ForgotPassword(context.Background(), "b@y.com")

		assert.Error(t, err)
		var appErr *apperrors.Error
		assert.False(t, errors.As(err, &appErr), "dispatch failure must map to a server error, not a domain error")
	})
}

// expiredResetToken signs a reset token whose validity window has already closed.
func expiredResetToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	claims := &auth.ResetClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-3 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return token
}

func TestAuthService_ResetPassword(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "b@y.com", Status: true}
	tokens := auth.NewTokenService(testSecret)

	validToken := func(t *testing.T) string {
		t.Helper()
		token, err := tokens.GenerateResetToken(user.ID, user.Email)
		if err != nil {
			t.Fatalf("sign reset token: %v", err)
		}
		return token
	}

	t.Run("missing fields", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), tokens, new(MockMailer), "")
		err := svc.ResetPassword(context.Background(), validToken(t), "", "newpass")
		assertAppError(t, err, "Password and confirm password are required.", http.StatusBadRequest)
	})

	t.Run("mismatched fields", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), tokens, new(MockMailer), "")
		err := svc.ResetPassword(context.Background(), validToken(t), "newpass", "other")
		assertAppError(t, err, "Passwords do not match.", http.StatusBadRequest)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), tokens, new(MockMailer), "")
		err := svc.ResetPassword(context.Background(), "not-a-token", "newpass", "newpass")
		assertAppError(t, err, "Token is invalid or has expired.", http.StatusBadRequest)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), tokens, new(MockMailer), "")
		err := svc.ResetPassword(context.Background(), expiredResetToken(t, user.ID, user.Email), "newpass", "newpass")
		assertAppError(t, err, "Token is invalid or has expired.", http.StatusBadRequest)
	})

	t.Run("mismatched id and email pair reads as not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDAndEmail", mock.Anything, user.ID, user.Email).Return(nil, gorm.ErrRecordNotFound)
		svc := NewAuthService(repo, tokens, new(MockMailer), "")
		err := svc.ResetPassword(context.Background(), validToken(t), "newpass", "newpass")
		assertAppError(t, err, "User not found.", http.StatusNotFound)
	})

	t.Run("overwrites the stored credential", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDAndEmail", mock.Anything, user.ID, user.Email).Return(user, nil)
		var storedHash string
		repo.On("UpdatePassword", mock.Anything, user.ID, mock.Anything).Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil)

		svc := NewAuthService(repo, tokens, new(MockMailer), "")
		err := svc.ResetPassword(context.Background(), validToken(t), "newpass", "newpass")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("newpass")))
		repo.AssertExpectations(t)
	})
}
