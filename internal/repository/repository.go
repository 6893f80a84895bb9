package repository

import (
	"context"
	"time"

	"github.com/news-portal-api/internal/database"
	"github.com/news-portal-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	IncrementViews(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	Count(ctx context.Context, filter models.ArticleFilter) (int, error)
	Search(ctx context.Context, q string, limit int) ([]*models.Article, error)
	Next(ctx context.Context, createdAt time.Time) (*models.Article, error)
	Previous(ctx context.Context, createdAt time.Time) (*models.Article, error)
	SetPublished(ctx context.Context, ids []string, published bool) (int64, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListApproved(ctx context.Context, articleID string, limit int) ([]*models.Comment, error)
	CountApproved(ctx context.Context, articleID string) (int, error)
	List(ctx context.Context, approved *bool) ([]*models.Comment, error)
	SetApproved(ctx context.Context, ids []string, approved bool) (int64, error)
}

// ContactRepository defines the interface for contact message operations
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error)
	SetRead(ctx context.Context, ids []string, read bool) (int64, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for author data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Comment  CommentRepository
	Contact  ContactRepository
	Category CategoryRepository
	User     UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Comment:  NewCommentRepo(db),
		Contact:  NewContactRepo(db),
		Category: NewCategoryRepo(db),
		User:     NewUserRepo(db),
	}
}
