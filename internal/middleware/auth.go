package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"guestbook/internal/auth"
	"guestbook/internal/cache"
	apperrors "guestbook/internal/errors"
	"guestbook/internal/repository"
)

// ContextKeyClaims is the echo context key under which VerifyToken stores the
// decoded session claims for downstream handlers.
const ContextKeyClaims = "decodedToken"

const roleCacheTTL = 5 * time.Minute

// AuthMiddleware guards protected routes. VerifyToken and RequireRoles are
// independently composable stages: the first authenticates the bearer token
// and the account behind it, the second authorizes by role name.
type AuthMiddleware struct {
	users  repository.UserRepository
	cache  *cache.Client
	secret []byte
}

// NewAuthMiddleware creates the middleware with its collaborators.
func NewAuthMiddleware(users repository.UserRepository, cacheClient *cache.Client, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		users:  users,
		cache:  cacheClient,
		secret: []byte(secret),
	}
}

// ClaimsFrom returns the session claims attached by VerifyToken, or nil.
func ClaimsFrom(c echo.Context) *auth.SessionClaims {
	claims, _ := c.Get(ContextKeyClaims).(*auth.SessionClaims)
	return claims
}

// VerifyToken authenticates the request: bearer token present, signature and
// expiry valid, and the account behind it still existing, active, and not
// locked. On success the decoded claims are attached to the request context.
func (m *AuthMiddleware) VerifyToken() echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		SigningKey: m.secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return apperrors.New("Access denied. No token provided.", http.StatusUnauthorized)
			}
			if errors.Is(err, jwt.ErrTokenExpired) {
				return apperrors.New("Token expired, please log in again", http.StatusUnauthorized)
			}
			return apperrors.New("Invalid Token, please log in again", http.StatusUnauthorized)
		},
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(m.requireAccount(next))
	}
}

// requireAccount re-resolves the token's subject and enforces the account
// state gates that a stateless token cannot carry.
func (m *AuthMiddleware) requireAccount(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return apperrors.New("Access denied. No token provided.", http.StatusUnauthorized)
		}
		claims, ok := token.Claims.(*auth.SessionClaims)
		if !ok {
			return apperrors.New("Invalid Token, please log in again", http.StatusUnauthorized)
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New("The user belonging to this token does no longer exist.", http.StatusUnauthorized)
			}
			return fmt.Errorf("resolve token user: %w", err)
		}
		if !user.Status {
			return apperrors.New("User is not an active user.", http.StatusUnauthorized)
		}
		if user.IsLocked {
			return apperrors.New("User is locked.", http.StatusUnauthorized)
		}

		c.Set(ContextKeyClaims, claims)
		return next(c)
	}
}

// RequireRoles allows the request only when the account's role name is one of
// the given names. Failures are written directly as plain 403/500 responses
// instead of flowing through the error handler.
func (m *AuthMiddleware) RequireRoles(names ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				log.Print("Unauthorized: no decoded token on request")
				return c.String(http.StatusForbidden, "Unauthorized")
			}

			roleName, err := m.roleName(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Print("Unauthorized: user role not found")
					return c.String(http.StatusForbidden, "Unauthorized")
				}
				log.Printf("role middleware: %v", err)
				return c.String(http.StatusInternalServerError, "Server error")
			}

			if _, ok := allowed[roleName]; !ok {
				log.Print("Unauthorized: insufficient permissions")
				return c.String(http.StatusForbidden, "Unauthorized")
			}
			return next(c)
		}
	}
}

// roleName resolves the role of a user, consulting the cache first. The role
// lookup runs on every authorization check, so cache misses fall through to
// the store and refresh the entry.
func (m *AuthMiddleware) roleName(ctx context.Context, userID uuid.UUID) (string, error) {
	key := "user_role:" + userID.String()
	if name := m.cache.GetString(ctx, key); name != "" {
		return name, nil
	}

	user, err := m.users.FindByIDWithRole(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.Role == nil {
		return "", gorm.ErrRecordNotFound
	}

	m.cache.SetString(ctx, key, user.Role.Name, roleCacheTTL)
	return user.Role.Name, nil
}
