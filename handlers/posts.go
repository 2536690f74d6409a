// handlers/posts.go
package handlers

import (
	"strconv"

	"postforge/database"
	"postforge/middleware"
	"postforge/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts returns the current team's generated posts, newest first
// GET /api/posts
func GetPosts(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	var posts []models.Post
	if err := database.GetDB().
		Where("team_id = ?", teamID).
		Preload("Brand").
		Preload("Persona").
		Preload("Theme").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch posts"})
	}

	return c.JSON(fiber.Map{"success": true, "posts": posts, "count": len(posts)})
}

// GetPost returns a single post with its image revisions
// GET /api/posts/:id
func GetPost(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid post ID"})
	}

	var post models.Post
	if err := database.GetDB().
		Where("id = ? AND team_id = ?", postID, teamID).
		Preload("Brand").
		Preload("Persona").
		Preload("Theme").
		Preload("Images").
		First(&post).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Post not found"})
	}

	return c.JSON(fiber.Map{"success": true, "post": post})
}

// DeletePost removes a post and its image revisions
// DELETE /api/posts/:id
func DeletePost(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "No workspace access"})
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid post ID"})
	}

	db := database.GetDB()

	var post models.Post
	if err := db.Where("id = ? AND team_id = ?", postID, teamID).First(&post).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Post not found"})
	}

	if err := db.Where("post_id = ?", post.ID).Delete(&models.GeneratedImage{}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete post images"})
	}
	if err := db.Delete(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete post"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Post deleted"})
}
