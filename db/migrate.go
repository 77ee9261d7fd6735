package db

import (
	"fmt"
	"log"

	"github.com/doctoraps/clinic-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Tenant{},
		&models.Account{},
		&models.DoctorProfile{},
		&models.Patient{},
		&models.FamilyMember{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Payment{},
		&models.DoctorAvailability{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
