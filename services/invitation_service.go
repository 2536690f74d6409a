// services/invitation_service.go - Invitation Workflow
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postforge/apperr"
	"postforge/models"

	"gorm.io/gorm"
)

// InvitationService resolves join requests into memberships. Invitations move
// pending -> approved or pending -> rejected and never leave a terminal state.
type InvitationService struct {
	db    *gorm.DB
	teams *TeamService
}

func NewInvitationService(db *gorm.DB) *InvitationService {
	return &InvitationService{db: db, teams: NewTeamService(db)}
}

// Request files a pending invitation for the caller to join the team behind
// the given code. A second request while one is already pending is refused,
// as is a request from someone who is already a member.
func (s *InvitationService) Request(callerID uint, teamCode string) (*models.Invitation, error) {
	team, err := s.teams.GetTeamByCode(teamCode)
	if err != nil {
		return nil, err
	}

	if s.teams.IsTeamMember(callerID, team.ID) {
		return nil, fmt.Errorf("%w: already a member of team %q", apperr.ErrConflict, team.Name)
	}

	var pending int64
	if err := s.db.Model(&models.Invitation{}).
		Where("team_id = ? AND user_id = ? AND status = ?", team.ID, callerID, models.InvitationStatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: a join request for team %q is already pending", apperr.ErrConflict, team.Name)
	}

	invitation := &models.Invitation{
		TeamID: team.ID,
		UserID: callerID,
		Status: models.InvitationStatusPending,
	}
	if err := s.db.Create(invitation).Error; err != nil {
		return nil, err
	}

	invitation.Team = team
	return invitation, nil
}

// ListPending returns a team's pending invitations, oldest first, with the
// requesting users preloaded. Only the team admin may call it.
func (s *InvitationService) ListPending(callerID, teamID uint) ([]models.Invitation, error) {
	if err := s.requireAdmin(callerID, teamID); err != nil {
		return nil, err
	}

	var invitations []models.Invitation
	err := s.db.Where("team_id = ? AND status = ?", teamID, models.InvitationStatusPending).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&invitations).Error
	return invitations, err
}

// Approve moves a pending invitation to approved, inserts the membership and,
// when the invited user has no current team yet, points their profile at this
// one. The three writes happen in one transaction gated by an optimistic
// status check, so concurrent approvals of the same invitation admit exactly
// one winner.
func (s *InvitationService) Approve(callerID, invitationID uint) error {
	invitation, err := s.getInvitation(invitationID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(callerID, invitation.TeamID); err != nil {
		return err
	}
	if !invitation.IsPending() {
		return fmt.Errorf("%w: invitation %d already %s", apperr.ErrInvalidState, invitationID, invitation.Status)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Invitation{}).
			Where("id = ? AND status = ?", invitationID, models.InvitationStatusPending).
			Update("status", models.InvitationStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent resolution.
			return fmt.Errorf("%w: invitation %d is no longer pending", apperr.ErrInvalidState, invitationID)
		}

		member := &models.TeamMember{
			TeamID:   invitation.TeamID,
			UserID:   invitation.UserID,
			Role:     models.TeamRoleMember,
			Status:   models.MemberStatusActive,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(member).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: membership already exists for user %d in team %d", apperr.ErrConflict, invitation.UserID, invitation.TeamID)
			}
			return err
		}

		// An existing team assignment is never overwritten.
		return tx.Model(&models.Profile{}).
			Where("user_id = ? AND current_team_id IS NULL", invitation.UserID).
			Update("current_team_id", invitation.TeamID).Error
	})
}

// Reject moves a pending invitation to rejected. Terminal, no side effects.
func (s *InvitationService) Reject(callerID, invitationID uint) error {
	invitation, err := s.getInvitation(invitationID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(callerID, invitation.TeamID); err != nil {
		return err
	}
	if !invitation.IsPending() {
		return fmt.Errorf("%w: invitation %d already %s", apperr.ErrInvalidState, invitationID, invitation.Status)
	}

	res := s.db.Model(&models.Invitation{}).
		Where("id = ? AND status = ?", invitationID, models.InvitationStatusPending).
		Update("status", models.InvitationStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: invitation %d is no longer pending", apperr.ErrInvalidState, invitationID)
	}
	return nil
}

// ListMine returns the caller's own invitations, newest first.
func (s *InvitationService) ListMine(callerID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := s.db.Where("user_id = ?", callerID).
		Preload("Team").
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (s *InvitationService) getInvitation(id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.db.First(&invitation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: invitation %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &invitation, nil
}

// isDuplicateKey reports whether an insert failed on a unique index. Not every
// driver translates to gorm.ErrDuplicatedKey, so the message is checked too.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}

// requireAdmin enforces the admin check at the service boundary rather than
// trusting the caller's UI to have done it.
func (s *InvitationService) requireAdmin(callerID, teamID uint) error {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: team %d", apperr.ErrNotFound, teamID)
		}
		return err
	}
	if team.AdminUserID != callerID {
		return fmt.Errorf("%w: only the team admin may manage invitations", apperr.ErrForbidden)
	}
	return nil
}
