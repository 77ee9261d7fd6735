package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	gorm.Model
	TenantID      uuid.UUID     `json:"tenant_id" gorm:"type:uuid;index"`
	Tenant        Tenant        `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	PatientID     uint          `json:"patient_id"`
	Patient       Patient       `json:"patient,omitempty" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	DoctorID      uint          `json:"doctor_id"`
	Doctor        DoctorProfile `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	AppointmentID uint          `json:"appointment_id"`
	Appointment   Appointment   `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
	Amount        float64       `json:"amount"`
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}
