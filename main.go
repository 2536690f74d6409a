package main

import (
	"os"
	"time"

	"postforge/database"
	"postforge/handlers"
	"postforge/logger"
	"postforge/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using system environment variables")
	}

	logger.Init()
	defer logger.Sync()

	validateEnvironment()

	database.InitDB()
	handlers.InitHandlers()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// Access gate, answers for unauthenticated callers too
	api.Get("/access/gate", middleware.OptionalAuth, handlers.EvaluateAccess)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)

	// Team and invitation routes (authenticated, onboarding happens here so
	// no team guard yet)
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Post("/", handlers.CreateTeam)
	teamGroup.Get("/lookup", handlers.LookupTeam)
	teamGroup.Post("/join", handlers.RequestJoin)
	teamGroup.Get("/current", middleware.RequireTeam, handlers.GetMyTeam)
	teamGroup.Get("/:id/members", handlers.GetTeamMembers)
	teamGroup.Get("/:id/invitations", handlers.ListPendingInvitations)

	invitationGroup := api.Group("/invitations")
	invitationGroup.Use(middleware.AuthMiddleware)
	invitationGroup.Get("/mine", handlers.ListMyInvitations)
	invitationGroup.Post("/:id/approve", handlers.ApproveInvitation)
	invitationGroup.Post("/:id/reject", handlers.RejectInvitation)

	// Content routes require workspace access
	content := api.Group("", middleware.AuthMiddleware, middleware.RequireTeam)

	content.Get("/brands", handlers.GetBrands)
	content.Post("/brands", handlers.CreateBrand)
	content.Put("/brands/:id", handlers.UpdateBrand)
	content.Delete("/brands/:id", handlers.DeleteBrand)

	content.Get("/personas", handlers.GetPersonas)
	content.Post("/personas", handlers.CreatePersona)
	content.Put("/personas/:id", handlers.UpdatePersona)
	content.Delete("/personas/:id", handlers.DeletePersona)

	content.Get("/themes", handlers.GetThemes)
	content.Post("/themes", handlers.CreateTheme)
	content.Put("/themes/:id", handlers.UpdateTheme)
	content.Delete("/themes/:id", handlers.DeleteTheme)

	content.Get("/posts", handlers.GetPosts)
	content.Post("/posts/generate", handlers.GeneratePost)
	content.Get("/posts/:id", handlers.GetPost)
	content.Delete("/posts/:id", handlers.DeletePost)
	content.Post("/posts/:id/images", handlers.GenerateImage)

	// Chat-driven image editing
	app.Get("/ws/image-chat",
		middleware.AuthMiddleware,
		middleware.RequireTeam,
		handlers.ImageChatUpgrade,
		handlers.ImageChat,
	)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	logger.Info("HTTP server starting",
		"port", port,
		"env", getEnv("APP_ENV", "development"),
		"ws", "/ws/image-chat",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Fatal("failed to start HTTP server", "error", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		logger.Fatal("JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		if os.Getenv("OPENAI_API_KEY") == "" {
			logger.Warn("OPENAI_API_KEY not set, generation endpoints will fail")
		}
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			logger.Warn("CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
