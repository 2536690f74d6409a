// handlers/personas.go
package handlers

import (
	"strconv"

	"postforge/database"
	"postforge/middleware"
	"postforge/models"

	"github.com/gofiber/fiber/v2"
)

type personaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AgeRange    string `json:"age_range"`
	Interests   string `json:"interests"`
	PainPoints  string `json:"pain_points"`
}

// GetPersonas returns the current team's personas
// GET /api/personas
func GetPersonas(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var personas []models.Persona
	if err := database.GetDB().
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("created_at DESC").
		Find(&personas).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch personas"})
	}

	return c.JSON(fiber.Map{"success": true, "personas": personas, "count": len(personas)})
}

// CreatePersona adds a persona to the current team
// POST /api/personas
func CreatePersona(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var req personaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Persona name is required"})
	}

	persona := models.Persona{
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
		AgeRange:    req.AgeRange,
		Interests:   req.Interests,
		PainPoints:  req.PainPoints,
		CreatedBy:   userID,
		IsActive:    true,
	}
	if err := database.GetDB().Create(&persona).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create persona"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "persona": persona})
}

// UpdatePersona edits a persona in the current team
// PUT /api/personas/:id
func UpdatePersona(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	personaID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid persona ID"})
	}

	var req personaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()

	var persona models.Persona
	if err := db.Where("id = ? AND team_id = ?", personaID, teamID).First(&persona).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Persona not found"})
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"age_range":   req.AgeRange,
		"interests":   req.Interests,
		"pain_points": req.PainPoints,
	}
	if err := db.Model(&persona).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update persona"})
	}

	return c.JSON(fiber.Map{"success": true, "persona": persona})
}

// DeletePersona soft deletes a persona
// DELETE /api/personas/:id
func DeletePersona(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	personaID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid persona ID"})
	}

	res := database.GetDB().Model(&models.Persona{}).
		Where("id = ? AND team_id = ?", personaID, teamID).
		Update("is_active", false)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete persona"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Persona not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Persona deleted"})
}
