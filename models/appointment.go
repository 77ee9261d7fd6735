package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
)

type ConsultationMode string

const (
	ModeVideo ConsultationMode = "video"
	ModeAudio ConsultationMode = "audio"
	ModeChat  ConsultationMode = "chat"
)

type Appointment struct {
	gorm.Model
	TenantID  uuid.UUID         `json:"tenant_id" gorm:"type:uuid;index"`
	Tenant    Tenant            `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	DoctorID  uint              `json:"doctor_id" gorm:"index"`
	Doctor    DoctorProfile     `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	PatientID uint              `json:"patient_id" gorm:"index"`
	Patient   Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    AppointmentStatus `json:"status"`
	Mode      ConsultationMode  `json:"mode"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	if a.Mode == "" {
		a.Mode = ModeVideo
	}
	return nil
}

// UpdateStatus enforces the appointment lifecycle: booked can be confirmed
// or rejected, confirmed can be completed, terminal states stay put.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusBooked:
		if newStatus != StatusConfirmed && newStatus != StatusRejected {
			return fmt.Errorf("invalid transition from booked to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusRejected {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusRejected, StatusCompleted:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
