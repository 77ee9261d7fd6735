package models

import (
	"gorm.io/gorm"
)

// FamilyMember is a dependent record under a Patient. It never logs in and
// has no authorization of its own; access follows the owning patient.
type FamilyMember struct {
	gorm.Model
	PatientID uint    `json:"patient_id" gorm:"index"`
	Patient   Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Name      string  `json:"name"`
	Relation  string  `json:"relation"`
	DOB       string  `json:"dob"`
}
