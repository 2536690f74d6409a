package services

import (
	"regexp"
	"testing"

	"postforge/apperr"
	"postforge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teamCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestCreateTeamGeneratesCodeAndAssignsCreator(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	creator := createUser(t, db, "alice")

	team, err := svc.CreateTeam(creator.ID, "Acme", "")
	require.NoError(t, err)

	assert.Equal(t, "Acme", team.Name)
	assert.Regexp(t, teamCodePattern, team.TeamCode)
	assert.Equal(t, creator.ID, team.AdminUserID)

	// Creator gets an admin membership row.
	var member models.TeamMember
	require.NoError(t, db.Where("team_id = ? AND user_id = ?", team.ID, creator.ID).First(&member).Error)
	assert.Equal(t, models.TeamRoleAdmin, member.Role)
	assert.Equal(t, models.MemberStatusActive, member.Status)

	// Creator's profile now points at the new team.
	profile := loadProfile(t, db, creator.ID)
	require.NotNil(t, profile.CurrentTeamID)
	assert.Equal(t, team.ID, *profile.CurrentTeamID)
}

func TestCreateTeamBlankNameFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	creator := createUser(t, db, "alice")

	_, err := svc.CreateTeam(creator.ID, "   ", "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTeamRequestedCodeIsNormalized(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	creator := createUser(t, db, "alice")

	team, err := svc.CreateTeam(creator.ID, "Acme", " acme1x ")
	require.NoError(t, err)
	assert.Equal(t, "ACME1X", team.TeamCode)
}

func TestCreateTeamDuplicateRequestedCodeConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.CreateTeam(alice.ID, "Acme", "ACME1X")
	require.NoError(t, err)

	_, err = svc.CreateTeam(bob.ID, "Knockoff", "acme1x")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// The failed attempt must not have moved bob's profile.
	profile := loadProfile(t, db, bob.ID)
	assert.Nil(t, profile.CurrentTeamID)
}

func TestGetTeamByCodeIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	creator := createUser(t, db, "alice")

	created, err := svc.CreateTeam(creator.ID, "Acme", "ACME1X")
	require.NoError(t, err)

	found, err := svc.GetTeamByCode("acme1x")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.Admin)
	assert.Equal(t, "alice", found.Admin.Username)
}

func TestGetTeamByCodeNotFoundIsANormalOutcome(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	team, err := svc.GetTeamByCode("ACME1")
	assert.Nil(t, team)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestMembershipUniquePerTeamAndUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	creator := createUser(t, db, "alice")

	team, err := svc.CreateTeam(creator.ID, "Acme", "")
	require.NoError(t, err)

	// Second membership row for the same (team, user) pair must be refused
	// by the storage layer.
	dup := &models.TeamMember{
		TeamID: team.ID,
		UserID: creator.ID,
		Role:   models.TeamRoleMember,
		Status: models.MemberStatusActive,
	}
	assert.Error(t, db.Create(dup).Error)

	var count int64
	db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", team.ID, creator.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRandomTeamCodeUsesFullAlphabet(t *testing.T) {
	seen := make(map[byte]bool)
	for i := 0; i < 200; i++ {
		code, err := randomTeamCode()
		require.NoError(t, err)
		assert.Regexp(t, teamCodePattern, code)
		for j := 0; j < len(code); j++ {
			seen[code[j]] = true
		}
	}

	// 1200 uniform draws over 36 characters miss one with negligible odds.
	assert.Len(t, seen, len(teamCodeAlphabet))
}
