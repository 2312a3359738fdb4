package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mini-crm/internal/domain"
	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

// RequireRole ensures the authenticated principal has one of the allowed
// roles. Resource-level ownership is still checked inside the services;
// this guard only covers coarse role gating at the route level.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
