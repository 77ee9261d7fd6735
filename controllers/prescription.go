package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
	"github.com/doctoraps/clinic-backend/utils"
)

// GetAllPrescriptions lists prescriptions in the bound tenant
func GetAllPrescriptions(c *fiber.Ctx) error {
	var prescriptions []models.Prescription

	if err := db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Preload("Doctor").Preload("Patient").Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get prescriptions",
		})
	}

	for i := range prescriptions {
		prescriptions[i].Doctor.Password = ""
	}

	return c.JSON(prescriptions)
}

// GetPrescription returns a single prescription in the bound tenant
func GetPrescription(c *fiber.Ctx) error {
	var prescription models.Prescription

	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Preload("Doctor").Preload("Patient").
		Where("id = ?", c.Params("id")).First(&prescription).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prescription not found",
		})
	}

	prescription.Doctor.Password = ""
	return c.JSON(prescription)
}

// CreatePrescription issues a prescription. The issuing account must hold
// the doctor role.
func CreatePrescription(c *fiber.Ctx) error {
	prescription := new(models.Prescription)

	if err := c.BodyParser(prescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if prescription.DoctorID == 0 || prescription.PatientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doctor_id and patient_id are required",
		})
	}

	tenant := middleware.BoundTenant(c)
	if tenant == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Tenant required",
		})
	}
	prescription.TenantID = tenant.ID

	// The issuer must belong to the same tenant as the prescription.
	var issuer models.Account
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", prescription.DoctorID).First(&issuer).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor account not found",
		})
	}
	if issuer.Role != models.RoleDoctor {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Issuing account does not hold the doctor role",
		})
	}

	var patient models.Patient
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", prescription.PatientID).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	if prescription.AppointmentID != nil {
		var appointment models.Appointment
		if db.DB.Scopes(db.TenantScope(tenant)).
			Where("id = ?", *prescription.AppointmentID).First(&appointment).RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Appointment not found",
			})
		}
	}

	if len(prescription.Medicines) == 0 {
		prescription.Medicines = datatypes.JSON([]byte("[]"))
	}

	if err := db.DB.Create(&prescription).Error; err != nil {
		log.Printf("Error creating prescription: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create prescription",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(prescription)
}

// UploadPrescriptionAttachment attaches a file (report, scan) to an
// existing prescription via Cloudinary.
func UploadPrescriptionAttachment(c *fiber.Ctx) error {
	var prescription models.Prescription
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&prescription).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prescription not found",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("prescription_%d", prescription.ID)
	url, err := utils.UploadPrescriptionAttachment(file, publicID)
	if err != nil {
		log.Printf("Cloudinary upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload attachment",
		})
	}

	prescription.AttachmentURL = url
	if err := db.DB.Save(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save attachment",
		})
	}

	return c.JSON(prescription)
}

// UpdatePrescription updates diagnosis and medicines
func UpdatePrescription(c *fiber.Ctx) error {
	var prescription models.Prescription
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&prescription).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prescription not found",
		})
	}

	type UpdateInput struct {
		Diagnosis string         `json:"diagnosis"`
		Medicines datatypes.JSON `json:"medicines"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Diagnosis != "" {
		prescription.Diagnosis = input.Diagnosis
	}
	if len(input.Medicines) > 0 {
		prescription.Medicines = input.Medicines
	}

	if err := db.DB.Save(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update prescription",
		})
	}

	return c.JSON(prescription)
}

// DeletePrescription removes a prescription in the bound tenant
func DeletePrescription(c *fiber.Ctx) error {
	var prescription models.Prescription
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&prescription).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prescription not found",
		})
	}

	if err := db.DB.Delete(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete prescription",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Prescription deleted",
	})
}
