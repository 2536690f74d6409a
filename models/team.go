// models/team.go
package models

import "time"

type Team struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null;size:100"`
	TeamCode    string       `json:"team_code" gorm:"uniqueIndex;not null;size:10"`
	AdminUserID uint         `json:"admin_user_id" gorm:"not null"`
	Admin       *User        `json:"admin,omitempty" gorm:"foreignKey:AdminUserID"`
	Members     []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
