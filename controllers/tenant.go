package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/models"
)

// Tenants are read-only over the API; they are provisioned by platform
// operations, not by callers.

// GetAllTenants returns all tenants
func GetAllTenants(c *fiber.Ctx) error {
	var tenants []models.Tenant

	if err := db.DB.Find(&tenants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get tenants",
		})
	}

	return c.JSON(tenants)
}

// GetTenant returns a single tenant by id
func GetTenant(c *fiber.Ctx) error {
	var tenant models.Tenant

	if db.DB.Where("id = ?", c.Params("id")).First(&tenant).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tenant not found",
		})
	}

	return c.JSON(tenant)
}
