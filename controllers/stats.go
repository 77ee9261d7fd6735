package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
)

// GetStats returns aggregate counts. Tenant-scoped when a tenant is bound,
// platform-wide otherwise. Requires authentication.
func GetStats(c *fiber.Ctx) error {
	tenant := middleware.BoundTenant(c)

	count := func(model interface{}) (int64, error) {
		var n int64
		query := db.DB.Model(model)
		if tenant != nil {
			query = query.Where("tenant_id = ?", tenant.ID)
		}
		return n, query.Count(&n).Error
	}

	stats := fiber.Map{}
	for name, model := range map[string]interface{}{
		"doctors":       &models.DoctorProfile{},
		"patients":      &models.Patient{},
		"appointments":  &models.Appointment{},
		"prescriptions": &models.Prescription{},
	} {
		n, err := count(model)
		if err != nil {
			log.Printf("Error counting %s: %v", name, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to compute stats",
			})
		}
		stats[name] = n
	}

	return c.JSON(stats)
}
