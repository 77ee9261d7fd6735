package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/models"
)

func TestFamilyMemberCRUD(t *testing.T) {
	app := setupTestApp(t)
	adminToken, _, patientID := seedClinic(t, app)

	status, body := doJSON(t, app, "POST", "/clinic1/api/family", adminToken, fiber.Map{
		"patient_id": patientID,
		"name":       "Tim Smith",
		"relation":   "son",
	})
	require.Equal(t, http.StatusCreated, status)
	memberID := bodyID(t, body)

	status, body = doJSON(t, app, "PATCH", "/clinic1/api/family/"+itoa(memberID), adminToken, fiber.Map{
		"relation": "nephew",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "nephew", body["relation"])

	listStatus, list := doJSONList(t, app, "GET", "/clinic1/api/family", adminToken)
	require.Equal(t, http.StatusOK, listStatus)
	assert.Len(t, list, 1)

	status, _ = doJSON(t, app, "DELETE", "/clinic1/api/family/"+itoa(memberID), adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	listStatus, list = doJSONList(t, app, "GET", "/clinic1/api/family", adminToken)
	require.Equal(t, http.StatusOK, listStatus)
	assert.Empty(t, list)
}

func TestFamilyMemberNeedsTenantPatient(t *testing.T) {
	app := setupTestApp(t)
	adminToken, _, patientID := seedClinic(t, app)
	createTenant(t, "Clinic Two", "clinic2")

	// The patient lives in clinic1; creating the dependent through clinic2
	// cannot find it.
	status, _ := doJSON(t, app, "POST", "/clinic2/api/family", adminToken, fiber.Map{
		"patient_id": patientID,
		"name":       "Tim Smith",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAvailabilityValidation(t *testing.T) {
	app := setupTestApp(t)
	adminToken, doctorID, _ := seedClinic(t, app)

	status, _ := doJSON(t, app, "POST", "/clinic1/api/doctor-availability", adminToken, fiber.Map{
		"doctor_id":   doctorID,
		"day_of_week": 7,
		"start_time":  "09:00",
		"end_time":    "17:00",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, "POST", "/clinic1/api/doctor-availability", adminToken, fiber.Map{
		"doctor_id":   doctorID,
		"day_of_week": 1,
		"start_time":  "17:00",
		"end_time":    "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, app, "POST", "/clinic1/api/doctor-availability", adminToken, fiber.Map{
		"doctor_id":   doctorID,
		"day_of_week": 1,
		"start_time":  "09:00",
		"end_time":    "17:00",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 1, body["day_of_week"])

	listStatus, list := doJSONList(t, app, "GET",
		"/clinic1/api/doctor-availability?doctor_id="+itoa(doctorID), adminToken)
	require.Equal(t, http.StatusOK, listStatus)
	assert.Len(t, list, 1)
}

func TestPaymentLifecycle(t *testing.T) {
	app := setupTestApp(t)
	adminToken, doctorID, patientID := seedClinic(t, app)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	status, body := doJSON(t, app, "POST", "/clinic1/api/appointments", adminToken, fiber.Map{
		"doctor_id":  doctorID,
		"patient_id": patientID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, status)
	appointmentID := bodyID(t, body)

	status, _ = doJSON(t, app, "POST", "/clinic1/api/payments", adminToken, fiber.Map{
		"patient_id":     patientID,
		"doctor_id":      doctorID,
		"appointment_id": appointmentID,
		"amount":         -5.0,
		"method":         "card",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, "POST", "/clinic1/api/payments", adminToken, fiber.Map{
		"patient_id":     patientID,
		"doctor_id":      doctorID,
		"appointment_id": appointmentID,
		"amount":         50.0,
		"method":         "card",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, string(models.PaymentPending), body["status"])
	paymentID := bodyID(t, body)

	status, body = doJSON(t, app, "PATCH", "/clinic1/api/payments/"+itoa(paymentID), adminToken, fiber.Map{
		"status":         "completed",
		"transaction_id": "txn_123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(models.PaymentCompleted), body["status"])
	assert.Equal(t, "txn_123", body["transaction_id"])

	// A settled payment cannot flip to failed.
	status, _ = doJSON(t, app, "PATCH", "/clinic1/api/payments/"+itoa(paymentID), adminToken, fiber.Map{
		"status": "failed",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPaymentValidatesTenantParticipants(t *testing.T) {
	app := setupTestApp(t)
	adminToken, doctorID, patientID := seedClinic(t, app)
	createTenant(t, "Clinic Two", "clinic2")

	// A patient and a doctor that live in clinic2.
	status, body := doJSON(t, app, "POST", "/clinic2/api/patients", adminToken, fiber.Map{
		"name": "Mary Jones",
	})
	require.Equal(t, http.StatusCreated, status)
	otherPatientID := bodyID(t, body)

	_, otherAccountID := registerAndLogin(t, app, "clinic2", "drsmith", models.RoleDoctor)
	status, body = doJSON(t, app, "POST", "/clinic2/api/doctors", adminToken, fiber.Map{
		"account_id": otherAccountID,
	})
	require.Equal(t, http.StatusCreated, status)
	otherDoctorID := bodyID(t, body)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	status, body = doJSON(t, app, "POST", "/clinic1/api/appointments", adminToken, fiber.Map{
		"doctor_id":  doctorID,
		"patient_id": patientID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, status)
	appointmentID := bodyID(t, body)

	// Clinic2's patient cannot be billed through clinic1.
	status, _ = doJSON(t, app, "POST", "/clinic1/api/payments", adminToken, fiber.Map{
		"patient_id":     otherPatientID,
		"doctor_id":      doctorID,
		"appointment_id": appointmentID,
		"amount":         50.0,
		"method":         "card",
	})
	assert.Equal(t, http.StatusNotFound, status)

	// Nor can clinic2's doctor collect there.
	status, _ = doJSON(t, app, "POST", "/clinic1/api/payments", adminToken, fiber.Map{
		"patient_id":     patientID,
		"doctor_id":      otherDoctorID,
		"appointment_id": appointmentID,
		"amount":         50.0,
		"method":         "card",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPrescriptionIssuerMustBeDoctor(t *testing.T) {
	app := setupTestApp(t)
	adminToken, _, patientID := seedClinic(t, app)
	_, agentAccountID := registerAndLogin(t, app, "clinic1", "frontdesk", models.RoleAgent)

	status, body := doJSON(t, app, "POST", "/clinic1/api/prescriptions", adminToken, fiber.Map{
		"doctor_id":  agentAccountID,
		"patient_id": patientID,
		"diagnosis":  "flu",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "doctor role")
}

func TestPrescriptionIssuerMustBeInTenant(t *testing.T) {
	app := setupTestApp(t)
	adminToken, _, patientID := seedClinic(t, app)
	createTenant(t, "Clinic Two", "clinic2")
	_, outsiderID := registerAndLogin(t, app, "clinic2", "drsmith", models.RoleDoctor)

	// A doctor from another clinic cannot issue prescriptions here, even
	// though the account holds the doctor role.
	status, body := doJSON(t, app, "POST", "/clinic1/api/prescriptions", adminToken, fiber.Map{
		"doctor_id":  outsiderID,
		"patient_id": patientID,
		"diagnosis":  "flu",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body["error"], "Doctor account not found")
}

func TestPrescriptionFlow(t *testing.T) {
	app := setupTestApp(t)
	adminToken, _, patientID := seedClinic(t, app)

	var account models.Account
	require.NotZero(t, db.DB.Where("username = ?", "drjane").First(&account).RowsAffected)
	doctorAccountID := account.ID

	status, body := doJSON(t, app, "POST", "/clinic1/api/prescriptions", adminToken, fiber.Map{
		"doctor_id":  doctorAccountID,
		"patient_id": patientID,
		"diagnosis":  "hypertension",
		"medicines":  []fiber.Map{{"name": "amlodipine", "dose": "5mg"}},
	})
	require.Equal(t, http.StatusCreated, status)
	prescriptionID := bodyID(t, body)
	assert.Equal(t, "hypertension", body["diagnosis"])

	status, body = doJSON(t, app, "PATCH", "/clinic1/api/prescriptions/"+itoa(prescriptionID), adminToken, fiber.Map{
		"diagnosis": "mild hypertension",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "mild hypertension", body["diagnosis"])

	listStatus, list := doJSONList(t, app, "GET", "/clinic1/api/prescriptions", adminToken)
	require.Equal(t, http.StatusOK, listStatus)
	assert.Len(t, list, 1)
}

func TestStatsCountsPerTenant(t *testing.T) {
	app := setupTestApp(t)
	adminToken, _, _ := seedClinic(t, app)
	createTenant(t, "Clinic Two", "clinic2")

	status, body := doJSON(t, app, "GET", "/clinic1/api/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["doctors"])
	assert.EqualValues(t, 1, body["patients"])
	assert.EqualValues(t, 0, body["appointments"])

	status, body = doJSON(t, app, "GET", "/clinic2/api/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["doctors"])
	assert.EqualValues(t, 0, body["patients"])

	// Unauthenticated stats are refused.
	status, _ = doJSON(t, app, "GET", "/clinic1/api/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAccountSoftDisable(t *testing.T) {
	app := setupTestApp(t)
	createTenant(t, "Clinic One", "clinic1")
	adminToken, _ := registerAndLogin(t, app, "clinic1", "boss", models.RoleAdmin)
	_, accountID := registerAndLogin(t, app, "clinic1", "temp", models.RolePatient)

	status, _ := doJSON(t, app, "DELETE", "/clinic1/api/accounts/"+itoa(int(accountID)), adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	// The record survives but can no longer log in.
	status, body := doJSON(t, app, "GET", "/clinic1/api/accounts/"+itoa(int(accountID)), adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["is_active"])

	status, _ = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"username": "temp",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
