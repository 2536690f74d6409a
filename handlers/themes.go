// handlers/themes.go
package handlers

import (
	"strconv"

	"postforge/database"
	"postforge/middleware"
	"postforge/models"

	"github.com/gofiber/fiber/v2"
)

type themeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// GetThemes returns the current team's content themes
// GET /api/themes
func GetThemes(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var themes []models.Theme
	if err := database.GetDB().
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("created_at DESC").
		Find(&themes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch themes"})
	}

	return c.JSON(fiber.Map{"success": true, "themes": themes, "count": len(themes)})
}

// CreateTheme adds a content theme to the current team
// POST /api/themes
func CreateTheme(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var req themeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Theme name is required"})
	}

	theme := models.Theme{
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
		Keywords:    req.Keywords,
		CreatedBy:   userID,
		IsActive:    true,
	}
	if err := database.GetDB().Create(&theme).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create theme"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "theme": theme})
}

// UpdateTheme edits a content theme
// PUT /api/themes/:id
func UpdateTheme(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	themeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid theme ID"})
	}

	var req themeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()

	var theme models.Theme
	if err := db.Where("id = ? AND team_id = ?", themeID, teamID).First(&theme).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Theme not found"})
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"keywords":    req.Keywords,
	}
	if err := db.Model(&theme).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update theme"})
	}

	return c.JSON(fiber.Map{"success": true, "theme": theme})
}

// DeleteTheme soft deletes a content theme
// DELETE /api/themes/:id
func DeleteTheme(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	themeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid theme ID"})
	}

	res := database.GetDB().Model(&models.Theme{}).
		Where("id = ? AND team_id = ?", themeID, teamID).
		Update("is_active", false)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete theme"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Theme not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Theme deleted"})
}
