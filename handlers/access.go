// handlers/access.go - Access Gate endpoint
package handlers

import (
	"postforge/database"
	"postforge/middleware"
	"postforge/models"
	"postforge/services"

	"github.com/gofiber/fiber/v2"
)

// EvaluateAccess reports the gate decision for the caller. The frontend asks
// this on every protected navigation; the handler only performs the two
// read-only lookups the gate depends on.
// GET /api/access/gate
func EvaluateAccess(c *fiber.Ctx) error {
	in := services.GateInput{}

	if userID, err := middleware.GetUserID(c); err == nil {
		in.UserID = &userID

		var profile models.Profile
		if err := database.GetDB().Where("user_id = ?", userID).First(&profile).Error; err == nil {
			in.Profile = &profile
		}
	}

	decision := services.EvaluateGate(in)

	return c.JSON(fiber.Map{
		"success":  true,
		"decision": decision.String(),
	})
}
