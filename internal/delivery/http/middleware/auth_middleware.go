package middleware

import (
	"context"
	"errors"
	"strings"

	"jobport/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
	CtxTokenKey  = "token"
	CtxClaimsKey = "claims"
)

// RevocationChecker is the session denylist lookup. When it errors the
// middleware rejects the request; a dead denylist must not silently turn
// revoked sessions back on.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string, claims jwt.Claims) (bool, error)
}

type AuthMiddleware struct {
	jwt      jwt.Service
	sessions RevocationChecker
}

func NewAuthMiddleware(jwtSvc jwt.Service, sessions RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, sessions: sessions}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		if m.sessions != nil {
			revoked, err := m.sessions.IsRevoked(c.Context(), token, claims)
			if err != nil {
				return NewAppError(fiber.StatusUnauthorized, "Session check failed", nil, err)
			}
			if revoked {
				return NewAppError(fiber.StatusUnauthorized, "Session revoked", nil, nil)
			}
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)
		c.Locals(CtxTokenKey, token)
		c.Locals(CtxClaimsKey, claims)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
