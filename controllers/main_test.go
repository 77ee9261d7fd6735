package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
	"github.com/doctoraps/clinic-backend/routes"
)

// setupTestApp wires the full route surface against a fresh in-memory
// SQLite store, the same shape as production minus postgres and Redis.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.Tenant{},
		&models.Account{},
		&models.DoctorProfile{},
		&models.Patient{},
		&models.FamilyMember{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Payment{},
		&models.DoctorAvailability{},
	))
	db.DB = gdb

	app := fiber.New()
	app.Use(middleware.ResolveTenant())
	routes.SetupAuthRoutes(app)
	routes.SetupAPIRoutes(app)
	return app
}

func itoa(n int) string { return strconv.Itoa(n) }

// bodyID pulls the primary key out of a response for models embedding
// gorm.Model, which marshals it as "ID".
func bodyID(t *testing.T, body map[string]interface{}) int {
	t.Helper()
	raw, ok := body["ID"].(float64)
	require.True(t, ok, "response has no ID: %v", body)
	return int(raw)
}

func createTenant(t *testing.T, name, slug string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{Name: name, Slug: slug}
	require.NoError(t, db.DB.Create(tenant).Error)
	return tenant
}

// doJSON fires a request through the fiber test transport and decodes the
// JSON body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (int, []interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []interface{}
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates an account through the API and returns its
// access token and id.
func registerAndLogin(t *testing.T, app *fiber.App, slug, username, role string) (string, uint) {
	t.Helper()

	prefix := ""
	if slug != "" {
		prefix = "/" + slug
	}

	status, created := doJSON(t, app, "POST", prefix+"/auth/register", "", fiber.Map{
		"username": username,
		"password": "secret123",
		"email":    username + "@example.com",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, status)
	accountID := uint(created["id"].(float64))

	status, body := doJSON(t, app, "POST", prefix+"/auth/login", "", fiber.Map{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	return token, accountID
}
