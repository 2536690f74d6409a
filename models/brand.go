// models/brand.go
package models

import "time"

// Brand is a team-scoped description of the product or company the generated
// content is written for.
type Brand struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TeamID      uint      `json:"team_id" gorm:"not null;index"`
	Team        *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Tone        string    `json:"tone" gorm:"size:100"`
	Website     string    `json:"website" gorm:"size:255"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	Creator     *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}
