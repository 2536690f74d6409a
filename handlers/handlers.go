// handlers/handlers.go - handler wiring and shared helpers
package handlers

import (
	"postforge/apperr"
	"postforge/database"
	"postforge/services"

	"github.com/gofiber/fiber/v2"
)

var (
	teamService       *services.TeamService
	invitationService *services.InvitationService
	generationService *services.GenerationService
)

// InitHandlers initializes the services behind the HTTP layer.
func InitHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}
	teamService = services.NewTeamService(db)
	invitationService = services.NewInvitationService(db)
	generationService = services.NewGenerationService(db)
}

// serviceError maps the service error taxonomy onto HTTP status codes.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = fiber.StatusBadRequest
	case apperr.IsNotFound(err):
		status = fiber.StatusNotFound
	case apperr.IsConflict(err), apperr.IsInvalidState(err):
		status = fiber.StatusConflict
	case apperr.IsForbidden(err):
		status = fiber.StatusForbidden
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
