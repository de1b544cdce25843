package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ArticleCategory) TableName() string {
	return "article_categories"
}

// HealthArticle is published content; Views is only ever changed by an
// in-place increment.
type HealthArticle struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug       string    `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Summary    string    `gorm:"type:text" json:"summary,omitempty"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	ImageURL   string    `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Views      int64     `gorm:"not null" json:"views"`
	Featured   bool      `gorm:"not null;index" json:"featured"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Author   *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *ArticleCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (HealthArticle) TableName() string {
	return "health_articles"
}

func (a *HealthArticle) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type ArticleFilter struct {
	CategorySlug string
	Featured     *bool
	Search       string
	Limit        int
	Offset       int
}
