// models/profile.go
package models

import "time"

// Profile is the per-user record gating workspace access. A null CurrentTeamID
// means no team access, regardless of any memberships or pending invitations.
type Profile struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User          *User  `gorm:"foreignKey:UserID" json:"-"`
	FullName      string `gorm:"size:200" json:"full_name"`
	CurrentTeamID *uint  `gorm:"index" json:"current_team_id"`
	CurrentTeam   *Team  `gorm:"foreignKey:CurrentTeamID" json:"current_team,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
