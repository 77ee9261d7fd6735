package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
)

// GetAllPayments lists payments in the bound tenant
func GetAllPayments(c *fiber.Ctx) error {
	var payments []models.Payment

	if err := db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get payments",
		})
	}

	return c.JSON(payments)
}

// GetPayment returns a single payment in the bound tenant
func GetPayment(c *fiber.Ctx) error {
	var payment models.Payment

	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&payment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	return c.JSON(payment)
}

// CreatePayment records a payment for an appointment in the bound tenant
func CreatePayment(c *fiber.Ctx) error {
	payment := new(models.Payment)

	if err := c.BodyParser(payment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if payment.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "amount must be positive",
		})
	}
	if payment.PatientID == 0 || payment.DoctorID == 0 || payment.AppointmentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "patient_id, doctor_id and appointment_id are required",
		})
	}

	tenant := middleware.BoundTenant(c)
	if tenant == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Tenant required",
		})
	}
	payment.TenantID = tenant.ID
	payment.Status = models.PaymentPending

	// Appointment, doctor and patient must all live in the bound tenant.
	var appointment models.Appointment
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", payment.AppointmentID).First(&appointment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	var doctor models.DoctorProfile
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", payment.DoctorID).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}
	var patient models.Patient
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", payment.PatientID).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	if err := db.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// UpdatePayment moves a payment through its lifecycle
func UpdatePayment(c *fiber.Ctx) error {
	var payment models.Payment
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&payment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	type UpdateInput struct {
		Status        models.PaymentStatus `json:"status"`
		TransactionID string               `json:"transaction_id"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Status != "" {
		if payment.Status != models.PaymentPending && input.Status != payment.Status {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "payment already settled",
			})
		}
		if input.Status != models.PaymentCompleted && input.Status != models.PaymentFailed &&
			input.Status != models.PaymentPending {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "status must be one of pending, completed, failed",
			})
		}
		payment.Status = input.Status
	}
	if input.TransactionID != "" {
		payment.TransactionID = input.TransactionID
	}

	if err := db.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update payment",
		})
	}

	return c.JSON(payment)
}

// DeletePayment removes a payment record in the bound tenant
func DeletePayment(c *fiber.Ctx) error {
	var payment models.Payment
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&payment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	if err := db.DB.Delete(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete payment",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Payment deleted",
	})
}
