package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
)

// GetAllPatients lists patients in the bound tenant
func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient

	if err := db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get patients",
		})
	}

	return c.JSON(patients)
}

// GetPatient returns a single patient in the bound tenant
func GetPatient(c *fiber.Ctx) error {
	var patient models.Patient

	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	return c.JSON(patient)
}

// CreatePatient creates a patient record in the bound tenant
func CreatePatient(c *fiber.Ctx) error {
	patient := new(models.Patient)

	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if patient.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Patient name is required",
		})
	}

	tenant := middleware.BoundTenant(c)
	if tenant == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Tenant required",
		})
	}
	// Whatever tenant the client put in the body is overwritten.
	patient.TenantID = tenant.ID

	if err := db.DB.Create(&patient).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Patient already linked to this account",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create patient",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

// UpdatePatient updates a patient record in the bound tenant
func UpdatePatient(c *fiber.Ctx) error {
	var patient models.Patient
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	type UpdateInput struct {
		Name    string `json:"name"`
		DOB     string `json:"dob"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != "" {
		patient.Name = input.Name
	}
	if input.DOB != "" {
		patient.DOB = input.DOB
	}
	if input.Phone != "" {
		patient.Phone = input.Phone
	}
	if input.Email != "" {
		patient.Email = input.Email
	}
	if input.Address != "" {
		patient.Address = input.Address
	}

	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update patient",
		})
	}

	return c.JSON(patient)
}

// DeletePatient removes a patient and, by cascade, their dependents
func DeletePatient(c *fiber.Ctx) error {
	var patient models.Patient
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	if err := db.DB.Delete(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete patient",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Patient deleted",
	})
}
