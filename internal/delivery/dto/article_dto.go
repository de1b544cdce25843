package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateArticleRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Slug       string `json:"slug" validate:"omitempty,max=220"`
	Summary    string `json:"summary" validate:"omitempty,max=1000"`
	Content    string `json:"content" validate:"required"`
	CategoryID *uint  `json:"category_id" validate:"omitempty,gt=0"`
	ImageURL   string `json:"image_url" validate:"omitempty,url,max=500"`
	Featured   bool   `json:"featured"`
}

type ListArticlesRequest struct {
	Category string
	Featured *bool
	Search   string
	Page     int
	Limit    int
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type ArticleResponse struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Summary    string            `json:"summary,omitempty"`
	Content    string            `json:"content,omitempty"`
	AuthorID   uuid.UUID         `json:"author_id"`
	AuthorName string            `json:"author_name,omitempty"`
	Category   *CategoryResponse `json:"category,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Views      int64             `json:"views"`
	Featured   bool              `json:"featured"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int64             `json:"total"`
	Page     int               `json:"-"`
	Limit    int               `json:"-"`
}
