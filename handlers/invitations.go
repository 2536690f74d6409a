// handlers/invitations.go - Invitation Workflow HTTP Handlers
package handlers

import (
	"strconv"

	"postforge/middleware"

	"github.com/gofiber/fiber/v2"
)

// RequestJoin files a join request against a team code
// POST /api/teams/join
func RequestJoin(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var req struct {
		TeamCode string `json:"team_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.TeamCode == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Team code is required"})
	}

	invitation, err := invitationService.Request(userID, req.TeamCode)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"message":    "Join request submitted",
		"invitation": invitation,
	})
}

// ListPendingInvitations returns a team's pending join requests, admin only
// GET /api/teams/:id/invitations
func ListPendingInvitations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	teamID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	invitations, err := invitationService.ListPending(userID, uint(teamID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"invitations": invitations,
		"count":       len(invitations),
	})
}

// ApproveInvitation resolves a pending join request into a membership
// POST /api/invitations/:id/approve
func ApproveInvitation(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	invitationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid invitation ID"})
	}

	if err := invitationService.Approve(userID, uint(invitationID)); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Invitation approved",
	})
}

// RejectInvitation declines a pending join request
// POST /api/invitations/:id/reject
func RejectInvitation(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	invitationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid invitation ID"})
	}

	if err := invitationService.Reject(userID, uint(invitationID)); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Invitation rejected",
	})
}

// ListMyInvitations returns the caller's own join requests
// GET /api/invitations/mine
func ListMyInvitations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	invitations, err := invitationService.ListMine(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to retrieve invitations"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"invitations": invitations,
	})
}
