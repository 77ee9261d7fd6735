package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/models"
	"github.com/doctoraps/clinic-backend/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Doctor").Preload("Patient").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Patient.Email == "" {
			continue
		}
		err := utils.SendAppointmentReminder(appointment.Patient.Email, utils.ReminderDetails{
			PatientName:    appointment.Patient.Name,
			DoctorName:     appointment.Doctor.Name,
			Specialization: appointment.Doctor.Specialization,
			Start:          appointment.StartTime,
			End:            appointment.EndTime,
			Mode:           string(appointment.Mode),
		})
		if err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}
