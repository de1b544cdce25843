package handler

import (
	"net/http"
	"strings"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/response"
	"online-health-consultation/pkg/validator"

	"github.com/gorilla/mux"
)

type ArticleHandler struct {
	articleUsecase usecase.ArticleUsecase
	validator      *validator.CustomValidator
}

func NewArticleHandler(articleUsecase usecase.ArticleUsecase, validator *validator.CustomValidator) *ArticleHandler {
	return &ArticleHandler{
		articleUsecase: articleUsecase,
		validator:      validator,
	}
}

// ListArticles
// @Summary List published articles
// @Tags Articles
// @Produce json
// @Param category query string false "Category slug"
// @Param featured query bool false "Only featured"
// @Param search query string false "Title, summary or content"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.ListArticlesRequest{
		Category: query.Get("category"),
		Featured: queryBool(r, "featured"),
		Search:   strings.TrimSpace(query.Get("search")),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	articles, err := h.articleUsecase.ListArticles(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to get articles")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Articles retrieved successfully", articles.Articles, response.NewMeta(articles.Page, articles.Limit, articles.Total))
}

// GetArticle
// @Summary Read an article
// @Description Each successful read increments the view counter
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /articles/{slug} [get]
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleUsecase.GetArticle(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		switch err {
		case usecase.ErrArticleNotFound:
			response.NotFound(w, "Article not found")
		default:
			response.InternalServerError(w, "Failed to get article")
		}
		return
	}

	response.Success(w, http.StatusOK, "Article retrieved successfully", article)
}

// CreateArticle
// @Summary Publish an article
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "Article"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateArticleRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	article, err := h.articleUsecase.CreateArticle(r.Context(), authorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrArticleSlugTaken:
			response.Conflict(w, "Article slug already exists", map[string]string{"slug": "already taken"})
		case usecase.ErrCategoryNotFound:
			response.ValidationError(w, map[string]string{"category_id": "does not exist"})
		case usecase.ErrInvalidSlug:
			response.ValidationError(w, map[string]string{"slug": "must contain letters or digits"})
		default:
			response.InternalServerError(w, "Failed to create article")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Article created successfully", article)
}

// ListCategories
// @Summary List article categories
// @Tags Articles
// @Produce json
// @Success 200 {object} response.Response
// @Router /articles/categories [get]
func (h *ArticleHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.articleUsecase.ListCategories(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get categories")
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved successfully", categories)
}

// CreateCategory
// @Summary Create an article category
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/categories [post]
func (h *ArticleHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	category, err := h.articleUsecase.CreateCategory(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCategorySlugTaken:
			response.Conflict(w, "Category slug already exists", map[string]string{"slug": "already taken"})
		case usecase.ErrInvalidSlug:
			response.ValidationError(w, map[string]string{"slug": "must contain letters or digits"})
		default:
			response.InternalServerError(w, "Failed to create category")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Category created successfully", category)
}
