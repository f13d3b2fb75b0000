package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"guestbook/internal/model"
)

const (
	// SessionTokenExpiry is the validity window of a login token.
	SessionTokenExpiry = 4 * time.Hour
	// ResetTokenExpiry is the validity window of a password reset token.
	ResetTokenExpiry = 1 * time.Hour
	// ActivationTokenExpiry is the validity window of an account activation token.
	ActivationTokenExpiry = 24 * time.Hour
)

// ErrInvalidToken is returned for any token that fails verification,
// regardless of the underlying cause.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims are carried by a login token. Validity is stateless:
// signature correctness plus non-expiry, no server-side session table.
type SessionClaims struct {
	UserID              uuid.UUID `json:"userId"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	IsFirstTime         bool      `json:"isFirstTime"`
	IsEmailNotification bool      `json:"isEmailNotification"`
	jwt.RegisteredClaims
}

// ResetClaims are carried by a password reset token. Possession of a
// currently-valid token is the sole proof of reset intent.
type ResetClaims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// ActivationClaims are carried by the account activation token mailed on
// registration.
type ActivationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the application's bearer tokens. It is a
// pure function of the shared secret injected at startup.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given shared secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateSessionToken signs a 4-hour session token for an authenticated user.
func (s *TokenService) GenerateSessionToken(user *model.User, roleName string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:              user.ID,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Email:               user.Email,
		Role:                roleName,
		IsFirstTime:         user.IsFirstTime,
		IsEmailNotification: user.IsEmailNotification,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateResetToken signs a 1-hour password reset token bound to the
// (user id, email) pair.
func (s *TokenService) GenerateResetToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateActivationToken signs a 24-hour activation token mailed to newly
// registered users.
func (s *TokenService) GenerateActivationToken(email string) (string, error) {
	now := time.Now()
	claims := &ActivationClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ActivationTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateSessionToken verifies a session token and returns its claims.
func (s *TokenService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateResetToken verifies a reset token and returns its claims.
func (s *TokenService) ValidateResetToken(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
