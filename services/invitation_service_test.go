package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"postforge/apperr"
	"postforge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type invitationFixture struct {
	db        *gorm.DB
	teams     *TeamService
	svc       *InvitationService
	admin     *models.User
	requester *models.User
	team      *models.Team
}

func newInvitationFixture(t *testing.T) *invitationFixture {
	t.Helper()

	db := newTestDB(t)
	teams := NewTeamService(db)
	svc := NewInvitationService(db)

	admin := createUser(t, db, "admin")
	requester := createUser(t, db, "requester")

	team, err := teams.CreateTeam(admin.ID, "Acme", "ACME1X")
	require.NoError(t, err)

	return &invitationFixture{
		db:        db,
		teams:     teams,
		svc:       svc,
		admin:     admin,
		requester: requester,
		team:      team,
	}
}

func TestRequestCreatesPendingInvitation(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "acme1x")
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusPending, invitation.Status)
	assert.Equal(t, f.team.ID, invitation.TeamID)
	assert.Equal(t, f.requester.ID, invitation.UserID)

	pending, err := f.svc.ListPending(f.admin.ID, f.team.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, invitation.ID, pending[0].ID)
	require.NotNil(t, pending[0].User)
	assert.Equal(t, "requester", pending[0].User.Username)
}

func TestRequestUnknownCodeNotFound(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.svc.Request(f.requester.ID, "NOSUCH")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRequestWhilePendingConflicts(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)

	_, err = f.svc.Request(f.requester.ID, "ACME1X")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestRequestFromMemberConflicts(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.svc.Request(f.admin.ID, "ACME1X")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestListPendingRequiresAdmin(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)

	_, err = f.svc.ListPending(f.requester.ID, f.team.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
}

func TestListPendingOldestFirst(t *testing.T) {
	f := newInvitationFixture(t)
	second := createUser(t, f.db, "second")

	first, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)
	later, err := f.svc.Request(second.ID, "ACME1X")
	require.NoError(t, err)

	pending, err := f.svc.ListPending(f.admin.ID, f.team.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, later.ID, pending[1].ID)
}

func TestApproveCreatesMembershipAndAssignsTeam(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)

	require.NoError(t, f.svc.Approve(f.admin.ID, invitation.ID))

	var member models.TeamMember
	require.NoError(t, f.db.Where("team_id = ? AND user_id = ?", f.team.ID, f.requester.ID).First(&member).Error)
	assert.Equal(t, models.TeamRoleMember, member.Role)
	assert.Equal(t, models.MemberStatusActive, member.Status)

	var reloaded models.Invitation
	require.NoError(t, f.db.First(&reloaded, invitation.ID).Error)
	assert.Equal(t, models.InvitationStatusApproved, reloaded.Status)

	profile := loadProfile(t, f.db, f.requester.ID)
	require.NotNil(t, profile.CurrentTeamID)
	assert.Equal(t, f.team.ID, *profile.CurrentTeamID)
}

func TestApproveNeverOverwritesExistingTeam(t *testing.T) {
	f := newInvitationFixture(t)

	// Requester already runs their own team.
	ownTeam, err := f.teams.CreateTeam(f.requester.ID, "Own Shop", "")
	require.NoError(t, err)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(f.admin.ID, invitation.ID))

	profile := loadProfile(t, f.db, f.requester.ID)
	require.NotNil(t, profile.CurrentTeamID)
	assert.Equal(t, ownTeam.ID, *profile.CurrentTeamID)

	// Membership in the approving team still exists.
	var member models.TeamMember
	require.NoError(t, f.db.Where("team_id = ? AND user_id = ?", f.team.ID, f.requester.ID).First(&member).Error)
}

func TestApproveRequiresAdmin(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)

	err = f.svc.Approve(f.requester.ID, invitation.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))

	var reloaded models.Invitation
	require.NoError(t, f.db.First(&reloaded, invitation.ID).Error)
	assert.Equal(t, models.InvitationStatusPending, reloaded.Status)
}

func TestApproveMissingInvitationNotFound(t *testing.T) {
	f := newInvitationFixture(t)

	err := f.svc.Approve(f.admin.ID, 9999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestApprovedInvitationIsTerminal(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(f.admin.ID, invitation.ID))

	err = f.svc.Approve(f.admin.ID, invitation.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))

	err = f.svc.Reject(f.admin.ID, invitation.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))

	// Still exactly one membership row.
	var count int64
	f.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", f.team.ID, f.requester.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRejectIsTerminalWithNoSideEffects(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)
	require.NoError(t, f.svc.Reject(f.admin.ID, invitation.ID))

	var reloaded models.Invitation
	require.NoError(t, f.db.First(&reloaded, invitation.ID).Error)
	assert.Equal(t, models.InvitationStatusRejected, reloaded.Status)

	var count int64
	f.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", f.team.ID, f.requester.ID).
		Count(&count)
	assert.Equal(t, int64(0), count)

	profile := loadProfile(t, f.db, f.requester.ID)
	assert.Nil(t, profile.CurrentTeamID)

	// A rejected invitation can't be approved afterwards.
	err = f.svc.Approve(f.admin.ID, invitation.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestConcurrentApprovalAdmitsExactlyOne(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.Approve(f.admin.ID, invitation.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperr.IsInvalidState(err), "loser must fail with a state error, got: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	f.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", f.team.ID, f.requester.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApproveWhenMembershipAlreadyExistsConflicts(t *testing.T) {
	f := newInvitationFixture(t)

	invitation, err := f.svc.Request(f.requester.ID, "ACME1X")
	require.NoError(t, err)

	// Membership created out of band while the invitation sat pending.
	member := &models.TeamMember{
		TeamID:   f.team.ID,
		UserID:   f.requester.ID,
		Role:     models.TeamRoleMember,
		Status:   models.MemberStatusActive,
		JoinedAt: time.Now(),
	}
	require.NoError(t, f.db.Create(member).Error)

	err = f.svc.Approve(f.admin.ID, invitation.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// The transaction rolled back, so the invitation is still pending.
	var stored models.Invitation
	require.NoError(t, f.db.First(&stored, invitation.ID).Error)
	assert.Equal(t, models.InvitationStatusPending, stored.Status)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(errors.New("UNIQUE constraint failed: team_members.team_id, team_members.user_id")))
	assert.True(t, isDuplicateKey(errors.New(`duplicate key value violates unique constraint "idx_team_members_team_user"`)))
	assert.False(t, isDuplicateKey(errors.New("database is locked")))
}
