// handlers/brands.go
package handlers

import (
	"strconv"

	"postforge/database"
	"postforge/middleware"
	"postforge/models"

	"github.com/gofiber/fiber/v2"
)

type brandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
	Website     string `json:"website"`
}

// GetBrands returns the current team's brands
// GET /api/brands
func GetBrands(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var brands []models.Brand
	if err := database.GetDB().
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("created_at DESC").
		Find(&brands).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch brands"})
	}

	return c.JSON(fiber.Map{"success": true, "brands": brands, "count": len(brands)})
}

// CreateBrand adds a brand to the current team
// POST /api/brands
func CreateBrand(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var req brandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Brand name is required"})
	}

	brand := models.Brand{
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
		Tone:        req.Tone,
		Website:     req.Website,
		CreatedBy:   userID,
		IsActive:    true,
	}
	if err := database.GetDB().Create(&brand).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create brand"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "brand": brand})
}

// UpdateBrand edits a brand in the current team
// PUT /api/brands/:id
func UpdateBrand(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	brandID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid brand ID"})
	}

	var req brandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()

	var brand models.Brand
	if err := db.Where("id = ? AND team_id = ?", brandID, teamID).First(&brand).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Brand not found"})
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"tone":        req.Tone,
		"website":     req.Website,
	}
	if err := db.Model(&brand).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update brand"})
	}

	return c.JSON(fiber.Map{"success": true, "brand": brand})
}

// DeleteBrand soft deletes a brand
// DELETE /api/brands/:id
func DeleteBrand(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	brandID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid brand ID"})
	}

	res := database.GetDB().Model(&models.Brand{}).
		Where("id = ? AND team_id = ?", brandID, teamID).
		Update("is_active", false)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete brand"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Brand not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Brand deleted"})
}
