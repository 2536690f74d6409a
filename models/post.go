// models/post.go
package models

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusGenerated PostStatus = "generated"
	PostStatusFailed    PostStatus = "failed"
)

// Post is a generated piece of marketing copy. Title, Body and Hashtags are
// parsed out of the model's free-text response.
type Post struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	TeamID    uint       `json:"team_id" gorm:"not null;index"`
	Team      *Team      `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	BrandID   *uint      `json:"brand_id" gorm:"index"`
	Brand     *Brand     `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	PersonaID *uint      `json:"persona_id" gorm:"index"`
	Persona   *Persona   `json:"persona,omitempty" gorm:"foreignKey:PersonaID"`
	ThemeID   *uint      `json:"theme_id" gorm:"index"`
	Theme     *Theme     `json:"theme,omitempty" gorm:"foreignKey:ThemeID"`
	Prompt    string     `json:"prompt" gorm:"type:text"`
	Title     string     `json:"title" gorm:"size:255"`
	Body      string     `json:"body" gorm:"type:text"`
	Hashtags  string     `json:"hashtags" gorm:"type:text"`
	Status    PostStatus `json:"status" gorm:"not null;default:'draft';index"`
	CreatedBy uint       `json:"created_by" gorm:"not null;index"`
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	Images []GeneratedImage `json:"images,omitempty" gorm:"foreignKey:PostID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// GeneratedImage is one revision in a post's image-edit chain. ParentID points
// at the revision the edit was applied to; nil marks the first render.
type GeneratedImage struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	PostID    uint            `json:"post_id" gorm:"not null;index"`
	Post      *Post           `json:"post,omitempty" gorm:"foreignKey:PostID"`
	ParentID  *uint           `json:"parent_id" gorm:"index"`
	Parent    *GeneratedImage `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Prompt    string          `json:"prompt" gorm:"type:text"`
	URL       string          `json:"url" gorm:"not null;size:1024"`
	CreatedBy uint            `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at"`
}

func (GeneratedImage) TableName() string {
	return "generated_images"
}
