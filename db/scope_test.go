package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doctoraps/clinic-backend/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.Tenant{},
		&models.Account{},
		&models.DoctorProfile{},
		&models.Patient{},
	))
	DB = gdb
}

func TestTenantScopeFiltersRows(t *testing.T) {
	setupTestDB(t)

	clinic1 := models.Tenant{Name: "Clinic One", Slug: "clinic1"}
	clinic2 := models.Tenant{Name: "Clinic Two", Slug: "clinic2"}
	require.NoError(t, DB.Create(&clinic1).Error)
	require.NoError(t, DB.Create(&clinic2).Error)

	require.NoError(t, DB.Create(&models.Patient{TenantID: clinic1.ID, Name: "A"}).Error)
	require.NoError(t, DB.Create(&models.Patient{TenantID: clinic1.ID, Name: "B"}).Error)
	require.NoError(t, DB.Create(&models.Patient{TenantID: clinic2.ID, Name: "C"}).Error)

	var patients []models.Patient
	require.NoError(t, DB.Scopes(TenantScope(&clinic1)).Find(&patients).Error)
	assert.Len(t, patients, 2)

	patients = nil
	require.NoError(t, DB.Scopes(TenantScope(&clinic2)).Find(&patients).Error)
	assert.Len(t, patients, 1)
	assert.Equal(t, "C", patients[0].Name)
}

func TestTenantScopeNilFailsClosed(t *testing.T) {
	setupTestDB(t)

	clinic1 := models.Tenant{Name: "Clinic One", Slug: "clinic1"}
	require.NoError(t, DB.Create(&clinic1).Error)
	require.NoError(t, DB.Create(&models.Patient{TenantID: clinic1.ID, Name: "A"}).Error)

	// No tenant resolved: the scope matches nothing instead of everything.
	var patients []models.Patient
	require.NoError(t, DB.Scopes(TenantScope(nil)).Find(&patients).Error)
	assert.Empty(t, patients)
}

func TestIsUniqueViolation(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, DB.Create(&models.Account{Username: "drjane", Role: models.RoleDoctor}).Error)
	err := DB.Create(&models.Account{Username: "drjane", Role: models.RoleDoctor}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.False(t, IsUniqueViolation(nil))
}
