// models/invitation.go
package models

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusApproved InvitationStatus = "approved"
	InvitationStatusRejected InvitationStatus = "rejected"
)

// Invitation is a pending request from a user to join a team, resolved by the
// team admin. Approved and rejected are terminal; a resolved invitation is
// never re-opened.
type Invitation struct {
	ID     uint             `json:"id" gorm:"primaryKey"`
	TeamID uint             `json:"team_id" gorm:"not null;index"`
	Team   *Team            `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UserID uint             `json:"user_id" gorm:"not null;index"`
	User   *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status InvitationStatus `json:"status" gorm:"not null;default:'pending';index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}
