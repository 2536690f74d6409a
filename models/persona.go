// models/persona.go
package models

import "time"

// Persona is a target audience sketch used to steer generated copy.
type Persona struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TeamID      uint      `json:"team_id" gorm:"not null;index"`
	Team        *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	AgeRange    string    `json:"age_range" gorm:"size:50"`
	Interests   string    `json:"interests" gorm:"type:text"`
	PainPoints  string    `json:"pain_points" gorm:"type:text"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	Creator     *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Persona) TableName() string {
	return "personas"
}
