package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
)

// GetAllAccounts lists accounts in the bound tenant
func GetAllAccounts(c *fiber.Ctx) error {
	var accounts []models.Account

	if err := db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).Find(&accounts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get accounts",
		})
	}

	for i := range accounts {
		accounts[i].Password = ""
	}

	return c.JSON(accounts)
}

// GetAccount returns a single account in the bound tenant
func GetAccount(c *fiber.Ctx) error {
	var account models.Account

	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&account).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	account.Password = ""
	return c.JSON(account)
}

// UpdateAccount updates contact fields on an account
func UpdateAccount(c *fiber.Ctx) error {
	var account models.Account
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&account).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	type UpdateInput struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Username, role, tenant and password never change through this
	// endpoint.
	if input.Email != "" {
		account.Email = input.Email
	}
	if input.FirstName != "" {
		account.FirstName = input.FirstName
	}
	if input.LastName != "" {
		account.LastName = input.LastName
	}
	if input.Phone != "" {
		account.Phone = input.Phone
	}

	if err := db.DB.Save(&account).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update account",
		})
	}

	account.Password = ""
	return c.JSON(account)
}

// DeactivateAccount soft-disables an account instead of deleting it
func DeactivateAccount(c *fiber.Ctx) error {
	var account models.Account
	if db.DB.Scopes(db.TenantScope(middleware.BoundTenant(c))).
		Where("id = ?", c.Params("id")).First(&account).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	account.IsActive = false
	if err := db.DB.Save(&account).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to deactivate account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Account deactivated",
	})
}
