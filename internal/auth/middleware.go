package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectID string
	Role      string
}

// AuthMiddleware validates bearer credentials: either a signed JWT or,
// when configured, the static operator key checked against its bcrypt
// hash.
type AuthMiddleware struct {
	tokens          *TokenManager
	operatorKeyHash string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, operatorKeyHash string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, operatorKeyHash: operatorKeyHash}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	credential := parts[1]

	if claims, err := m.tokens.ParseToken(credential); err == nil {
		c.Locals(principalKey, &Principal{SubjectID: claims.SubjectID, Role: claims.Role})
		return c.Next()
	}

	if m.operatorKeyHash != "" {
		if err := CompareOperatorKey(m.operatorKeyHash, credential); err == nil {
			c.Locals(principalKey, &Principal{SubjectID: "operator-key", Role: RoleOperator})
			return c.Next()
		}
	}

	return apperrors.NewUnauthorized("invalid credentials")
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireOperator ensures the caller carries the operator role.
func RequireOperator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != RoleOperator {
			return apperrors.NewForbidden("operator role required")
		}
		return c.Next()
	}
}
