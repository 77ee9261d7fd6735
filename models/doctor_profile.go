package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DoctorProfile is one-to-one with an Account. The unique index on
// AccountID is what actually serializes concurrent profile creation for the
// same account; the controller's existence check is only a friendly
// pre-flight.
type DoctorProfile struct {
	gorm.Model
	AccountID       uint           `json:"account_id" gorm:"uniqueIndex"`
	Account         Account        `json:"account,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	TenantID        *uuid.UUID     `json:"tenant_id" gorm:"type:uuid"`
	Name            string         `json:"name"`
	Specialization  string         `json:"specialization"`
	ConsultationFee float64        `json:"consultation_fee"`
	WorkingHours    datatypes.JSON `json:"working_hours"`
	IsVerified      bool           `json:"is_verified" gorm:"default:false"`
}
