// models/team_member.go
package models

import "time"

type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

type MemberStatus string

const (
	MemberStatusActive MemberStatus = "active"
)

// TeamMember links a user to a team. The composite unique index keeps at most
// one membership per (team, user) pair.
type TeamMember struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	TeamID   uint         `json:"team_id" gorm:"not null;uniqueIndex:idx_team_members_team_user"`
	Team     *Team        `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UserID   uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_team_members_team_user"`
	User     *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Role     TeamRole     `json:"role" gorm:"not null;default:'member'"`
	Status   MemberStatus `json:"status" gorm:"not null;default:'active'"`
	JoinedAt time.Time    `json:"joined_at" gorm:"not null"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
