package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
	"github.com/doctoraps/clinic-backend/utils"
)

// Availability rows scope through the owning doctor profile.
func availabilityScope(c *fiber.Ctx) func(*gorm.DB) *gorm.DB {
	tenant := middleware.BoundTenant(c)
	return func(tx *gorm.DB) *gorm.DB {
		if tenant == nil {
			return tx.Where("1 = 0")
		}
		return tx.Joins("JOIN doctor_profiles ON doctor_profiles.id = doctor_availabilities.doctor_id").
			Where("doctor_profiles.tenant_id = ?", tenant.ID)
	}
}

// GetAllAvailability lists availability slots, optionally for one doctor
func GetAllAvailability(c *fiber.Ctx) error {
	var slots []models.DoctorAvailability

	query := db.DB.Scopes(availabilityScope(c))
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		query = query.Where("doctor_availabilities.doctor_id = ?", doctorID)
	}

	if err := query.Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get availability",
		})
	}

	return c.JSON(slots)
}

// GetAvailability returns a single availability slot
func GetAvailability(c *fiber.Ctx) error {
	var slot models.DoctorAvailability

	if db.DB.Scopes(availabilityScope(c)).
		Where("doctor_availabilities.id = ?", c.Params("id")).First(&slot).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}

	return c.JSON(slot)
}

// CreateAvailability adds a weekly slot for a doctor in the bound tenant
func CreateAvailability(c *fiber.Ctx) error {
	slot := new(models.DoctorAvailability)

	if err := c.BodyParser(slot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if slot.DoctorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doctor_id is required",
		})
	}
	if slot.DayOfWeek < models.Sunday || slot.DayOfWeek > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "day_of_week must be between 0 and 6",
		})
	}
	if err := utils.ValidateClockRange(slot.StartTime, slot.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var doctor models.DoctorProfile
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", slot.DoctorID).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if err := db.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create availability",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(slot)
}

// UpdateAvailability changes a weekly slot
func UpdateAvailability(c *fiber.Ctx) error {
	var slot models.DoctorAvailability
	if db.DB.Scopes(availabilityScope(c)).
		Where("doctor_availabilities.id = ?", c.Params("id")).First(&slot).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}

	type UpdateInput struct {
		DayOfWeek *models.DayOfWeek `json:"day_of_week"`
		StartTime string            `json:"start_time"`
		EndTime   string            `json:"end_time"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.DayOfWeek != nil {
		if *input.DayOfWeek < models.Sunday || *input.DayOfWeek > models.Saturday {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "day_of_week must be between 0 and 6",
			})
		}
		slot.DayOfWeek = *input.DayOfWeek
	}
	if input.StartTime != "" {
		slot.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		slot.EndTime = input.EndTime
	}
	if err := utils.ValidateClockRange(slot.StartTime, slot.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := db.DB.Save(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update availability",
		})
	}

	return c.JSON(slot)
}

// DeleteAvailability removes a weekly slot
func DeleteAvailability(c *fiber.Ctx) error {
	var slot models.DoctorAvailability
	if db.DB.Scopes(availabilityScope(c)).
		Where("doctor_availabilities.id = ?", c.Params("id")).First(&slot).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}

	if err := db.DB.Delete(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete availability",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Availability deleted",
	})
}
