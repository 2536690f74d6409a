// handlers/generation.go - AI generation HTTP Handlers
package handlers

import (
	"strconv"

	"postforge/logger"
	"postforge/middleware"
	"postforge/services"

	"github.com/gofiber/fiber/v2"
)

// GeneratePost asks the text model for a new post
// POST /api/posts/generate
func GeneratePost(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var req services.GeneratePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	post, err := generationService.GeneratePost(userID, teamID, req)
	if err != nil {
		logger.Error("post generation failed", "team_id", teamID, "error", err)
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "post": post})
}

// GenerateImage renders the first image for a post
// POST /api/posts/:id/images
func GenerateImage(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid post ID"})
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	image, err := generationService.GenerateImage(userID, teamID, uint(postID), req.Prompt)
	if err != nil {
		logger.Error("image generation failed", "team_id", teamID, "post_id", postID, "error", err)
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "image": image})
}
