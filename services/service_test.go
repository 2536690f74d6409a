package services

import (
	"testing"

	"postforge/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database, capped at one connection so the
// per-connection memory store survives for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Team{},
		&models.TeamMember{},
		&models.Invitation{},
		&models.Brand{},
		&models.Persona{},
		&models.Theme{},
		&models.Post{},
		&models.GeneratedImage{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{UserID: user.ID, FullName: username}
	require.NoError(t, db.Create(profile).Error)

	user.Profile = profile
	return user
}

func loadProfile(t *testing.T, db *gorm.DB, userID uint) *models.Profile {
	t.Helper()

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	return &profile
}
