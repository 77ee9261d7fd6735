package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
)

// GetAllDoctors lists doctor profiles in the bound tenant
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.DoctorProfile

	if err := db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Preload("Account").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get doctors",
		})
	}

	for i := range doctors {
		doctors[i].Account.Password = ""
	}

	return c.JSON(doctors)
}

// GetDoctor returns a single doctor profile in the bound tenant
func GetDoctor(c *fiber.Ctx) error {
	var doctor models.DoctorProfile

	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Preload("Account").Where("id = ?", c.Params("id")).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	doctor.Account.Password = ""
	return c.JSON(doctor)
}

// RegisterDoctor creates a doctor profile for an existing account. Admin only.
func RegisterDoctor(c *fiber.Ctx) error {
	type RegisterInput struct {
		AccountID       uint           `json:"account_id"`
		Name            string         `json:"name"`
		Specialization  string         `json:"specialization"`
		ConsultationFee float64        `json:"consultation_fee"`
		WorkingHours    datatypes.JSON `json:"working_hours"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.AccountID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "account_id is required",
		})
	}

	var account models.Account
	if db.DB.First(&account, input.AccountID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	// Friendly pre-check; the unique index on account_id decides the race.
	var existing models.DoctorProfile
	if db.DB.Where("account_id = ?", input.AccountID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Doctor profile already exists for this account",
		})
	}

	name := input.Name
	if name == "" {
		name = account.FullName()
	}

	doctor := models.DoctorProfile{
		AccountID:       input.AccountID,
		Name:            name,
		Specialization:  input.Specialization,
		ConsultationFee: input.ConsultationFee,
		WorkingHours:    input.WorkingHours,
	}

	// Tenant comes from the resolver, or from the account itself when the
	// registration goes through the global surface.
	if tenant := middleware.BoundTenant(c); tenant != nil {
		doctor.TenantID = &tenant.ID
	} else {
		doctor.TenantID = account.TenantID
	}

	if err := db.DB.Create(&doctor).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Doctor profile already exists for this account",
			})
		}
		log.Printf("Error creating doctor profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create doctor profile",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateDoctor updates profile fields. Admin only.
func UpdateDoctor(c *fiber.Ctx) error {
	var doctor models.DoctorProfile
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	type UpdateInput struct {
		Name            string         `json:"name"`
		Specialization  string         `json:"specialization"`
		ConsultationFee *float64       `json:"consultation_fee"`
		WorkingHours    datatypes.JSON `json:"working_hours"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != "" {
		doctor.Name = input.Name
	}
	if input.Specialization != "" {
		doctor.Specialization = input.Specialization
	}
	if input.ConsultationFee != nil {
		doctor.ConsultationFee = *input.ConsultationFee
	}
	if len(input.WorkingHours) > 0 {
		doctor.WorkingHours = input.WorkingHours
	}

	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update doctor",
		})
	}

	return c.JSON(doctor)
}

// ApproveDoctor sets the verification flag. Admin only, idempotent:
// repeating the same value yields the same state and a success response.
func ApproveDoctor(c *fiber.Ctx) error {
	type ApproveInput struct {
		Approve bool `json:"approve"`
	}
	input := new(ApproveInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var doctor models.DoctorProfile
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if doctor.IsVerified != input.Approve {
		doctor.IsVerified = input.Approve
		if err := db.DB.Save(&doctor).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update doctor",
			})
		}
	}

	return c.JSON(fiber.Map{
		"id":          doctor.ID,
		"is_verified": doctor.IsVerified,
	})
}

// DeleteDoctor removes a doctor profile. Admin only.
func DeleteDoctor(c *fiber.Ctx) error {
	var doctor models.DoctorProfile
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if err := db.DB.Delete(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete doctor",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Doctor deleted",
	})
}
