package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/models"
)

// reservedPrefixes are path roots that can never be tenant slugs.
var reservedPrefixes = map[string]bool{
	"admin":  true,
	"api":    true,
	"auth":   true,
	"static": true,
	"media":  true,
}

// ResolveTenant inspects the first path segment and, when it names an
// existing tenant slug, binds that tenant to the request. Resolution is
// advisory context only: a request without a tenant is never treated as
// privileged, it just sees empty scoped data or a "tenant required" denial
// downstream. The lookup happens once here; handlers read the result from
// locals and never re-derive it.
func ResolveTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.Split(strings.Trim(c.Path(), "/"), "/")
		if len(parts) == 0 || parts[0] == "" || reservedPrefixes[parts[0]] {
			return c.Next()
		}

		var tenant models.Tenant
		if db.DB.Where("slug = ?", parts[0]).First(&tenant).RowsAffected > 0 {
			c.Locals("tenant", &tenant)
		}
		return c.Next()
	}
}

// BoundTenant returns the tenant resolved for this request, or nil.
func BoundTenant(c *fiber.Ctx) *models.Tenant {
	tenant, _ := c.Locals("tenant").(*models.Tenant)
	return tenant
}
