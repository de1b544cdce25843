package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

func CategoryToResponse(category *entity.ArticleCategory) *dto.CategoryResponse {
	if category == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}

func CategoriesToResponses(categories []entity.ArticleCategory) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *CategoryToResponse(&categories[i])
	}
	return responses
}

// ArticleToResponse converts a HealthArticle entity to ArticleResponse DTO.
// Content is included only when withContent is set; list views omit it.
func ArticleToResponse(article *entity.HealthArticle, withContent bool) *dto.ArticleResponse {
	if article == nil {
		return nil
	}

	response := &dto.ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Slug:      article.Slug,
		Summary:   article.Summary,
		AuthorID:  article.AuthorID,
		Category:  CategoryToResponse(article.Category),
		ImageURL:  article.ImageURL,
		Views:     article.Views,
		Featured:  article.Featured,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
	if withContent {
		response.Content = article.Content
	}
	if article.Author != nil {
		response.AuthorName = article.Author.FullName()
	}
	return response
}

func ArticlesToResponses(articles []entity.HealthArticle) []dto.ArticleResponse {
	responses := make([]dto.ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = *ArticleToResponse(&articles[i], false)
	}
	return responses
}
