package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DoctorAvailability is a weekly recurring slot. Times are "HH:MM" in 24h.
type DoctorAvailability struct {
	gorm.Model
	DoctorID  uint          `json:"doctor_id" gorm:"index"`
	Doctor    DoctorProfile `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	DayOfWeek DayOfWeek     `json:"day_of_week"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
}
