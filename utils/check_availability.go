package utils

import (
	"time"

	"github.com/google/uuid"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/models"
)

// CheckDoctorAvailability reports whether a doctor has no booked or
// confirmed appointment overlapping the given window inside the tenant.
// excludeID skips one appointment so updates don't conflict with
// themselves. The unique answer under concurrency still comes from the
// store; this keeps honest callers from double-booking.
func CheckDoctorAvailability(tenantID uuid.UUID, doctorID uint, start, end time.Time, excludeID uint) (bool, error) {
	var count int64
	query := db.DB.Model(&models.Appointment{}).
		Where("tenant_id = ?", tenantID).
		Where("doctor_id = ?", doctorID).
		Where("status IN ?", []models.AppointmentStatus{models.StatusBooked, models.StatusConfirmed}).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
