package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prescription is issued by an Account holding the doctor role, not by a
// DoctorProfile, so a prescription survives profile edits.
type Prescription struct {
	gorm.Model
	TenantID      uuid.UUID      `json:"tenant_id" gorm:"type:uuid;index"`
	Tenant        Tenant         `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	DoctorID      uint           `json:"doctor_id"`
	Doctor        Account        `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	PatientID     uint           `json:"patient_id" gorm:"index"`
	Patient       Patient        `json:"patient,omitempty" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	AppointmentID *uint          `json:"appointment_id"`
	Appointment   *Appointment   `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID;constraint:OnDelete:SET NULL"`
	Diagnosis     string         `json:"diagnosis"`
	Medicines     datatypes.JSON `json:"medicines"`
	AttachmentURL string         `json:"attachment_url"`
}
