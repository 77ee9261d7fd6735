package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	TenantID  uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	Tenant    Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	AccountID *uint     `json:"account_id" gorm:"uniqueIndex"`
	Account   *Account  `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Name      string    `json:"name"`
	DOB       string    `json:"dob"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
}
