package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles are a fixed set. There is no role table; the string on the account
// is the single source of truth and the policy table keys off it.
const (
	RoleAdmin      = "admin"
	RoleDoctor     = "doctor"
	RolePatient    = "patient"
	RoleAgent      = "agent"
	RoleManagement = "management"
)

var validRoles = map[string]bool{
	RoleAdmin:      true,
	RoleDoctor:     true,
	RolePatient:    true,
	RoleAgent:      true,
	RoleManagement: true,
}

// IsValidRole reports whether role is one of the fixed role names.
func IsValidRole(role string) bool {
	return validRoles[role]
}

type Account struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	Role      string     `json:"role"`
	TenantID  *uuid.UUID `json:"tenant_id" gorm:"type:uuid"`
	Tenant    *Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     string     `json:"phone"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FullName joins the name fields, falling back to the username so there is
// always something to display.
func (a *Account) FullName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	default:
		return a.Username
	}
}
