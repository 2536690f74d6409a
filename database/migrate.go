// database/migrate.go - Database Migration Runner
package database

import (
	"postforge/logger"
	"postforge/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	logger.Info("running database migrations")

	// Identity and content models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Brand{},
		&models.Persona{},
		&models.Theme{},
		&models.Post{},
		&models.GeneratedImage{},
	); err != nil {
		logger.Fatal("core migrations failed", "error", err)
	}

	// Workspace access-control models
	if err := RunWorkspaceMigrations(db); err != nil {
		logger.Fatal("workspace migrations failed", "error", err)
	}

	createCoreIndexes()

	logger.Info("migrations completed")
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_user ON profiles(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_team ON profiles(current_team_id)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_brands_team ON brands(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_personas_team ON personas(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_themes_team ON themes(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_team ON posts(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_generated_images_post ON generated_images(post_id)")
}
