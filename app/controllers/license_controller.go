package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/repository"
)

// HandleListLicenses returns the caller's company licenses.
func HandleListLicenses(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	licenses, err := repository.GetGlobalRepositories().License.ListByCompany(currentCompanyID(c), offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load licenses"})
	}
	return c.JSON(fiber.Map{"licenses": licenses})
}

// HandleGetLicense returns one license of the caller's company. Cross-tenant
// IDs read as not found.
func HandleGetLicense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid license id"})
	}

	license, err := repository.GetGlobalRepositories().License.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "License not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load license"})
	}
	if license.CompanyID != currentCompanyID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "License not found"})
	}

	return c.JSON(license)
}
