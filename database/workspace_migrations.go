// database/workspace_migrations.go - Workspace Access-Control Migrations
package database

import (
	"postforge/logger"
	"postforge/models"

	"gorm.io/gorm"
)

// RunWorkspaceMigrations creates the team, membership and invitation tables.
func RunWorkspaceMigrations(db *gorm.DB) error {
	logger.Info("running workspace migrations")

	if err := db.AutoMigrate(
		&models.Team{},
		&models.TeamMember{},
		&models.Invitation{},
	); err != nil {
		return err
	}

	return createWorkspaceIndexes(db)
}

// createWorkspaceIndexes creates database indexes for workspace tables
func createWorkspaceIndexes(db *gorm.DB) error {
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_admin ON teams(admin_user_id)")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_code ON teams(team_code)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_user ON team_members(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_role ON team_members(role)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_invitations_team ON invitations(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_invitations_user ON invitations(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_invitations_status ON invitations(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_invitations_team_status ON invitations(team_id, status)")

	return nil
}
