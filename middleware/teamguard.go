// middleware/teamguard.go
package middleware

import (
	"postforge/database"
	"postforge/models"

	"github.com/gofiber/fiber/v2"
)

// RequireTeam mirrors the access gate at the API boundary: callers whose
// profile has no current team are rejected before any content route runs.
// Runs after AuthMiddleware.
func RequireTeam(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var profile models.Profile
	if err := database.GetDB().Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	if profile.CurrentTeamID == nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	c.Locals("teamId", *profile.CurrentTeamID)
	return c.Next()
}

// GetTeamID returns the caller's current team, set by RequireTeam.
func GetTeamID(c *fiber.Ctx) (uint, error) {
	teamID := c.Locals("teamId")
	if teamID == nil {
		return 0, fiber.NewError(403, "No workspace access")
	}

	if id, ok := teamID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(403, "Invalid team ID format")
}
