package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
	"github.com/doctoraps/clinic-backend/utils"
)

// parseWindow overlays RFC3339 start/end strings onto an appointment.
func parseWindow(start, end *string, a *models.Appointment) error {
	if start != nil {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return fmt.Errorf("invalid start_time format")
		}
		a.StartTime = t
	}
	if end != nil {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return fmt.Errorf("invalid end_time format")
		}
		a.EndTime = t
	}
	return nil
}

// GetAllAppointments lists appointments in the bound tenant
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment

	if err := db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Preload("Doctor").Preload("Patient").
		Order("start_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get appointments",
		})
	}

	return c.JSON(appointments)
}

// GetAppointment returns a single appointment in the bound tenant
func GetAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment

	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Preload("Doctor").Preload("Patient").
		Where("id = ?", c.Params("id")).First(&appointment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	return c.JSON(appointment)
}

// CreateAppointment books a doctor for a patient in the bound tenant
func CreateAppointment(c *fiber.Ctx) error {
	appointment := new(models.Appointment)

	if err := c.BodyParser(appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if appointment.DoctorID == 0 || appointment.PatientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doctor_id and patient_id are required",
		})
	}

	if appointment.StartTime.IsZero() || appointment.EndTime.IsZero() ||
		!appointment.StartTime.Before(appointment.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_time must be before end_time",
		})
	}

	if appointment.Mode != "" && appointment.Mode != models.ModeVideo &&
		appointment.Mode != models.ModeAudio && appointment.Mode != models.ModeChat {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "mode must be one of video, audio, chat",
		})
	}

	tenant := middleware.BoundTenant(c)
	if tenant == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Tenant required",
		})
	}
	appointment.TenantID = tenant.ID
	appointment.Status = models.StatusBooked

	// Doctor and patient must both live in the same tenant.
	var doctor models.DoctorProfile
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", appointment.DoctorID).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}
	var patient models.Patient
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", appointment.PatientID).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	available, err := utils.CheckDoctorAvailability(tenant.ID, appointment.DoctorID,
		appointment.StartTime, appointment.EndTime, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check availability",
		})
	}
	if !available {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Doctor already booked for this time slot",
		})
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create appointment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment reschedules or changes the status of an appointment
func UpdateAppointment(c *fiber.Ctx) error {
	tenant := middleware.BoundTenant(c)

	var appointment models.Appointment
	if db.DB.Scopes(db.TenantScope(tenant)).
		Where("id = ?", c.Params("id")).First(&appointment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	type UpdateInput struct {
		StartTime *string                  `json:"start_time"`
		EndTime   *string                  `json:"end_time"`
		Status    models.AppointmentStatus `json:"status"`
		Mode      models.ConsultationMode  `json:"mode"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.StartTime != nil || input.EndTime != nil {
		updated := appointment
		if err := parseWindow(input.StartTime, input.EndTime, &updated); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if !updated.StartTime.Before(updated.EndTime) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_time must be before end_time",
			})
		}

		available, err := utils.CheckDoctorAvailability(appointment.TenantID,
			appointment.DoctorID, updated.StartTime, updated.EndTime, appointment.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check availability",
			})
		}
		if !available {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Doctor already booked for this time slot",
			})
		}

		appointment.StartTime = updated.StartTime
		appointment.EndTime = updated.EndTime
	}

	if input.Mode != "" {
		appointment.Mode = input.Mode
	}

	if input.Status != "" && input.Status != appointment.Status {
		if err := appointment.UpdateStatus(db.DB, input.Status); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(appointment)
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update appointment",
		})
	}

	return c.JSON(appointment)
}

// DeleteAppointment removes an appointment in the bound tenant
func DeleteAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&appointment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete appointment",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Appointment deleted",
	})
}
