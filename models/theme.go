// models/theme.go
package models

import "time"

// Theme is a recurring content angle (launch announcements, tips, seasonal
// campaigns) that posts are generated around.
type Theme struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TeamID      uint      `json:"team_id" gorm:"not null;index"`
	Team        *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Keywords    string    `json:"keywords" gorm:"type:text"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	Creator     *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Theme) TableName() string {
	return "themes"
}
