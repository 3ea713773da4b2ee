package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/usercontext"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateUser adds a user to the admin's own company and returns the
// user's API token once.
func HandleCreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	user, err := models.CreateUser(currentCompanyID(c), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	token, err := user.GenerateAPIToken()
	if err != nil {
		log.Errorf("[User] Failed to generate API token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to generate API token"})
	}

	if err := repository.GetGlobalRepositories().User.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Email already registered"})
		}
		log.Errorf("[User] Failed to create user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":      user,
		"api_token": token,
	})
}

// HandleListUsers returns all users of the admin's company.
func HandleListUsers(c *fiber.Ctx) error {
	users, err := repository.GetGlobalRepositories().User.ListByCompany(currentCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load users"})
	}
	return c.JSON(fiber.Map{"users": users})
}

// HandleGetMe returns the authenticated user.
func HandleGetMe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	user, err := repository.GetGlobalRepositories().User.GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}
	return c.JSON(user)
}
