package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
)

// Family members carry no tenant column of their own; scoping rides on the
// owning patient via a join.
func familyScope(c *fiber.Ctx) func(*gorm.DB) *gorm.DB {
	tenant := middleware.BoundTenant(c)
	return func(tx *gorm.DB) *gorm.DB {
		if tenant == nil {
			return tx.Where("1 = 0")
		}
		return tx.Joins("JOIN patients ON patients.id = family_members.patient_id").
			Where("patients.tenant_id = ?", tenant.ID)
	}
}

// GetAllFamilyMembers lists dependents of patients in the bound tenant
func GetAllFamilyMembers(c *fiber.Ctx) error {
	var members []models.FamilyMember

	if err := db.DB.Scopes(familyScope(c)).Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get family members",
		})
	}

	return c.JSON(members)
}

// GetFamilyMember returns a single dependent in the bound tenant
func GetFamilyMember(c *fiber.Ctx) error {
	var member models.FamilyMember

	if db.DB.Scopes(familyScope(c)).
		Where("family_members.id = ?", c.Params("id")).First(&member).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Family member not found",
		})
	}

	return c.JSON(member)
}

// CreateFamilyMember adds a dependent to a patient in the bound tenant
func CreateFamilyMember(c *fiber.Ctx) error {
	member := new(models.FamilyMember)

	if err := c.BodyParser(member); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if member.PatientID == 0 || member.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "patient_id and name are required",
		})
	}

	// The owning patient must exist in the caller's tenant.
	var patient models.Patient
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", member.PatientID).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	if err := db.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create family member",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

// UpdateFamilyMember updates a dependent in the bound tenant
func UpdateFamilyMember(c *fiber.Ctx) error {
	var member models.FamilyMember
	if db.DB.Scopes(familyScope(c)).
		Where("family_members.id = ?", c.Params("id")).First(&member).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Family member not found",
		})
	}

	type UpdateInput struct {
		Name     string `json:"name"`
		Relation string `json:"relation"`
		DOB      string `json:"dob"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != "" {
		member.Name = input.Name
	}
	if input.Relation != "" {
		member.Relation = input.Relation
	}
	if input.DOB != "" {
		member.DOB = input.DOB
	}

	if err := db.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update family member",
		})
	}

	return c.JSON(member)
}

// DeleteFamilyMember removes a dependent in the bound tenant
func DeleteFamilyMember(c *fiber.Ctx) error {
	var member models.FamilyMember
	if db.DB.Scopes(familyScope(c)).
		Where("family_members.id = ?", c.Params("id")).First(&member).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Family member not found",
		})
	}

	if err := db.DB.Delete(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete family member",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Family member deleted",
	})
}
