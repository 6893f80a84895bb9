package service

import (
	"context"

	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/media"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the editor-side article operations
type ArticleService interface {
	Create(ctx context.Context, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error)
	Update(ctx context.Context, id string, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	SetPublished(ctx context.Context, ids []string, published bool) (int64, error)
}

// NewsService defines the reader-side article queries
type NewsService interface {
	Home(ctx context.Context) (*models.HomeFeed, error)
	List(ctx context.Context, page, pageSize int, categoryID int64) (*models.ArticlePage, error)
	Detail(ctx context.Context, slug string) (*models.ArticleDetail, error)
	Search(ctx context.Context, q string) ([]*models.Article, error)
	MostRead(ctx context.Context, n int) ([]*models.Article, error)
}

// CommentService defines comment submission and moderation
type CommentService interface {
	Submit(ctx context.Context, slug string, form *models.CommentForm) (*models.Comment, error)
	ListForArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
	List(ctx context.Context, approved *bool) ([]*models.Comment, error)
	SetApproved(ctx context.Context, ids []string, approved bool) (int64, error)
}

// ContactService defines contact form handling
type ContactService interface {
	Submit(ctx context.Context, form *models.ContactForm) (*models.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error)
	SetRead(ctx context.Context, ids []string, read bool) (int64, error)
}

// CategoryService defines category management
type CategoryService interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorService defines author management
type AuthorService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// ImageNormalizer rewrites a stored article image in place
type ImageNormalizer interface {
	Normalize(ctx context.Context, key string) models.ImageResult
}

// Services holds all service interfaces
type Services struct {
	Article  ArticleService
	News     NewsService
	Comment  CommentService
	Contact  ContactService
	Category CategoryService
	Author   AuthorService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store media.Store, cfg *config.Config, log zerolog.Logger) *Services {
	normalizer := media.NewNormalizer(store, cfg.Media.MaxImageWidth, cfg.Media.JPEGQuality)

	return &Services{
		Article:  newArticleService(repos.Article, store, normalizer, log),
		News:     newNewsService(repos.Article, repos.Comment, cfg.Content, log),
		Comment:  newCommentService(repos.Article, repos.Comment, cfg.Content, log),
		Contact:  newContactService(repos.Contact, log),
		Category: newCategoryService(repos.Category, log),
		Author:   newAuthorService(repos.User, log),
	}
}
