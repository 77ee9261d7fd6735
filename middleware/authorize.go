package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/apperr"
	"github.com/doctoraps/clinic-backend/policy"
)

// Authorize runs the policy table for the given resource/action against the
// request's bound tenant and role claim. Must run after Protected.
func Authorize(resource policy.Resource, action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := Role(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No role in request context",
			})
		}

		if err := policy.Evaluate(BoundTenant(c) != nil, role, resource, action); err != nil {
			return c.Status(apperr.StatusFor(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Next()
	}
}
