// services/team_service.go - Team Registry and Membership Ledger
package services

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"postforge/apperr"
	"postforge/models"

	"gorm.io/gorm"
)

const (
	teamCodeLength   = 6
	teamCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	teamCodeAttempts = 5
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// CreateTeam creates a new team with the caller as admin. The caller gets an
// admin membership row and their profile is pointed at the new team, all in
// one transaction. When requestedCode is empty a random 6-character code is
// generated, retried on collision up to teamCodeAttempts times.
func (s *TeamService) CreateTeam(callerID uint, name, requestedCode string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", apperr.ErrValidation)
	}

	code := NormalizeTeamCode(requestedCode)

	var team *models.Team
	var lastErr error
	for attempt := 0; attempt < teamCodeAttempts; attempt++ {
		candidate := code
		if candidate == "" {
			generated, err := randomTeamCode()
			if err != nil {
				return nil, err
			}
			candidate = generated
		}

		team = &models.Team{
			Name:        name,
			TeamCode:    candidate,
			AdminUserID: callerID,
			CreatedAt:   time.Now(),
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Team{}).Where("team_code = ?", candidate).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: team code %q already in use", apperr.ErrConflict, candidate)
			}

			if err := tx.Create(team).Error; err != nil {
				return err
			}

			member := &models.TeamMember{
				TeamID:   team.ID,
				UserID:   callerID,
				Role:     models.TeamRoleAdmin,
				Status:   models.MemberStatusActive,
				JoinedAt: time.Now(),
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}

			// Team creation always repoints the creator's profile.
			return tx.Model(&models.Profile{}).
				Where("user_id = ?", callerID).
				Update("current_team_id", team.ID).Error
		})

		if err == nil {
			return team, nil
		}
		lastErr = err

		// A requested code that collides is the caller's problem, not ours to retry.
		if code != "" || !apperr.IsConflict(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("could not allocate a unique team code after %d attempts: %w", teamCodeAttempts, lastErr)
}

// GetTeamByCode resolves a team by its join code, case-insensitively. A code
// that resolves to nothing yields ErrNotFound; callers treat that as a normal
// outcome, not a fault.
func (s *TeamService) GetTeamByCode(code string) (*models.Team, error) {
	code = NormalizeTeamCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: team code is required", apperr.ErrValidation)
	}

	var team models.Team
	err := s.db.Where("team_code = ?", code).Preload("Admin").First(&team).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no team with code %q", apperr.ErrNotFound, code)
		}
		return nil, err
	}

	return &team, nil
}

// GetTeamByID retrieves a team with its active members preloaded.
func (s *TeamService) GetTeamByID(teamID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Members", "status = ?", models.MemberStatusActive).
		Preload("Members.User").
		First(&team, teamID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: team %d", apperr.ErrNotFound, teamID)
		}
		return nil, err
	}

	return &team, nil
}

// GetTeamMembers returns all active members of a team with users preloaded.
func (s *TeamService) GetTeamMembers(teamID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.Where("team_id = ? AND status = ?", teamID, models.MemberStatusActive).
		Preload("User").
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

// IsTeamMember checks if a user has an active membership in a team.
func (s *TeamService) IsTeamMember(userID, teamID uint) bool {
	var count int64
	s.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, models.MemberStatusActive).
		Count(&count)
	return count > 0
}

// IsTeamAdmin checks if a user is the team's admin.
func (s *TeamService) IsTeamAdmin(userID, teamID uint) bool {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return false
	}
	return team.AdminUserID == userID
}

// NormalizeTeamCode uppercases and trims a join code. Codes are normalized on
// both write and read so lookups stay case-insensitive.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// randomTeamCode generates a 6-character uppercase alphanumeric code, short
// enough to read aloud or type from a shared screen. Bytes at or above the
// largest multiple of the alphabet size are discarded so every character is
// equally likely.
func randomTeamCode() (string, error) {
	limit := 256 - 256%len(teamCodeAlphabet)
	code := make([]byte, teamCodeLength)
	buf := make([]byte, 1)
	for i := 0; i < teamCodeLength; {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate team code: %w", err)
		}
		if int(buf[0]) >= limit {
			continue
		}
		code[i] = teamCodeAlphabet[int(buf[0])%len(teamCodeAlphabet)]
		i++
	}
	return string(code), nil
}
