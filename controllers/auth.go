package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/doctoraps/clinic-backend/db"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/models"
	"github.com/doctoraps/clinic-backend/redis"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = time.Hour * 24 * 7
)

// dashboardFor gives the frontend a routing hint per role.
func dashboardFor(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/dashboard/admin"
	case models.RoleDoctor:
		return "/dashboard/doctor"
	case models.RoleAgent:
		return "/dashboard/reception"
	case models.RoleManagement:
		return "/dashboard/management"
	default:
		return "/dashboard/patient"
	}
}

// Register handles account registration
func Register(c *fiber.Ctx) error {
	account := new(models.Account)

	if err := c.BodyParser(account); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Validate input
	if account.Username == "" || account.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if account.Role == "" {
		account.Role = models.RolePatient
	}
	if !models.IsValidRole(account.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown role: " + account.Role,
		})
	}

	// Check if username is taken. The unique index is the real guarantee;
	// this just gives a clean answer in the common case.
	var existing models.Account
	if db.DB.Where("username = ?", account.Username).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Account with this username already exists",
		})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}
	account.Password = string(hashedPassword)
	account.IsActive = true

	// The account belongs to the tenant the resolver bound, never to one
	// the client names in the body.
	if tenant := middleware.BoundTenant(c); tenant != nil {
		account.TenantID = &tenant.ID
	} else {
		account.TenantID = nil
	}

	if err := db.DB.Create(&account).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Account with this username already exists",
			})
		}
		log.Printf("Error creating account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	// Remove password from response
	account.Password = ""

	return c.Status(fiber.StatusCreated).JSON(account)
}

// issueTokens creates the access/refresh pair for an account. The access
// token carries id, role and tenant so every request can be authorized
// without a session store; the refresh token's jti is tracked in Redis so
// it can be revoked on logout.
func issueTokens(account *models.Account) (string, string, error) {
	claims := jwt.MapClaims{
		"id":       account.ID,
		"username": account.Username,
		"role":     account.Role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
	}
	if account.TenantID != nil {
		claims["tenant_id"] = account.TenantID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.Secret())
	if err != nil {
		return "", "", err
	}

	jti := uuid.NewString()
	refreshClaims := jwt.MapClaims{
		"id":  account.ID,
		"jti": jti,
		"exp": time.Now().Add(refreshTokenTTL).Unix(),
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(middleware.Secret())
	if err != nil {
		return "", "", err
	}

	if err := redis.TrackRefreshToken(jti, account.ID, refreshTokenTTL); err != nil {
		log.Printf("Failed to track refresh token: %v", err)
	}

	return tokenString, refreshTokenString, nil
}

// Login handles authentication, optionally pinned to an expected role
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var account models.Account
	if db.DB.Where("username = ?", input.Username).First(&account).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !account.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// A login pinned to a role must fail loudly on mismatch rather than
	// silently handing out the stored role. The credentials stay valid for
	// a plain login.
	if input.Role != "" && input.Role != account.Role {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Role mismatch: account does not hold role " + input.Role,
		})
	}

	tokenString, refreshTokenString, err := issueTokens(&account)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"dashboard":    dashboardFor(account.Role),
		"user": fiber.Map{
			"id":       account.ID,
			"username": account.Username,
			"name":     account.FullName(),
			"email":    account.Email,
			"role":     account.Role,
		},
	})
}

// GetProfile returns the current account's profile
func GetProfile(c *fiber.Ctx) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Account ID not found in context",
		})
	}

	var account models.Account
	if db.DB.Where("id = ?", accountID).First(&account).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	// Don't send password
	account.Password = ""

	return c.JSON(account)
}

// Logout revokes the refresh token; the access token simply ages out.
func Logout(c *fiber.Ctx) error {
	type LogoutRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(LogoutRequest)
	if err := c.BodyParser(req); err == nil && req.RefreshToken != "" {
		token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
			return middleware.Secret(), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if jti, ok := claims["jti"].(string); ok {
					if err := redis.RevokeRefreshToken(jti); err != nil {
						log.Printf("Failed to revoke refresh token: %v", err)
					}
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken exchanges a valid, unrevoked refresh token for a new access token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	// Only tracked refresh tokens carry a jti. Anything else signed with the
	// same key, an access token included, must not mint new access tokens.
	claims := token.Claims.(jwt.MapClaims)
	jti, ok := claims["jti"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}
	if !redis.RefreshTokenValid(jti) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Refresh token revoked",
		})
	}

	// Re-read the account so a role or tenant change since login lands in
	// the new access token.
	idVal, ok := claims["id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	var account models.Account
	if db.DB.First(&account, uint(idVal)).RowsAffected == 0 || !account.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	newClaims := jwt.MapClaims{
		"id":       account.ID,
		"username": account.Username,
		"role":     account.Role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
	}
	if account.TenantID != nil {
		newClaims["tenant_id"] = account.TenantID.String()
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(middleware.Secret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}
