package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/database"
)

type registerCompanyRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	VATNumber  string `json:"vat_number"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`

	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

// HandleRegisterCompany creates a tenant together with its first admin user
// and returns the admin's API token. The token is shown exactly once; only
// its hash is stored.
func HandleRegisterCompany(c *fiber.Ctx) error {
	var req registerCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	company := &models.Company{
		Name:       req.Name,
		Email:      req.Email,
		VATNumber:  req.VATNumber,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Status:     models.COMPANY_STATUS_ACTIVE,
	}
	if err := company.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	admin, err := models.CreateUser(0, req.AdminName, req.AdminEmail, req.AdminPassword, models.ROLE_ADMIN)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	token, err := admin.GenerateAPIToken()
	if err != nil {
		log.Errorf("[Company] Failed to generate API token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to generate API token"})
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		admin.CompanyID = company.ID
		return tx.Create(admin).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Company or user email already registered"})
		}
		log.Errorf("[Company] Registration failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to register company"})
	}

	log.Infof("[Company] Registered company %s (%d) with admin %s", company.Name, company.ID, admin.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"company":   company,
		"admin":     admin,
		"api_token": token,
	})
}

// HandleGetCompany returns the authenticated user's own company.
func HandleGetCompany(c *fiber.Ctx) error {
	companyID := currentCompanyID(c)
	company, err := repository.GetGlobalRepositories().Company.GetByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Company not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company"})
	}
	return c.JSON(company)
}
