// handlers/teams.go - Team Registry HTTP Handlers
package handlers

import (
	"strconv"

	"postforge/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam creates a new team with the caller as admin
// POST /api/teams
func CreateTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var req struct {
		Name     string `json:"name"`
		TeamCode string `json:"team_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.CreateTeam(userID, req.Name, req.TeamCode)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Team created successfully",
		"team":    team,
	})
}

// LookupTeam resolves a join code to a team, for the onboarding screen.
// Returns the admin's display name alongside the team.
// GET /api/teams/lookup?code=ABC123
func LookupTeam(c *fiber.Ctx) error {
	code := c.Query("code")

	team, err := teamService.GetTeamByCode(code)
	if err != nil {
		return serviceError(c, err)
	}

	adminName := ""
	if team.Admin != nil {
		adminName = team.Admin.Username
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team": fiber.Map{
			"id":         team.ID,
			"name":       team.Name,
			"team_code":  team.TeamCode,
			"admin_name": adminName,
		},
	})
}

// GetMyTeam returns the caller's current team with its members
// GET /api/teams/current
func GetMyTeam(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	team, err := teamService.GetTeamByID(teamID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// GetTeamMembers returns the active members of a team
// GET /api/teams/:id/members
func GetTeamMembers(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	teamID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	if !teamService.IsTeamMember(userID, uint(teamID)) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not a member of this team"})
	}

	members, err := teamService.GetTeamMembers(uint(teamID))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to retrieve members"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}
