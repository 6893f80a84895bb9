package mocks

import (
	"context"

	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
)

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	CreateFunc       func(ctx context.Context, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error)
	UpdateFunc       func(ctx context.Context, id string, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error)
	DeleteFunc       func(ctx context.Context, id string) error
	GetByIDFunc      func(ctx context.Context, id string) (*models.Article, error)
	SetPublishedFunc func(ctx context.Context, ids []string, published bool) (int64, error)
	LastImage        *models.ImageUpload
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func (m *MockArticleService) Create(ctx context.Context, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error) {
	m.LastImage = image
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input, image)
	}
	return &models.SaveResult{
		Article: &models.Article{ID: "test-article-id", Title: input.Title, Slug: input.Slug, CategoryID: input.CategoryID},
		Image:   models.ImageResult{Status: models.ImageStatusSkipped},
	}, nil
}

func (m *MockArticleService) Update(ctx context.Context, id string, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error) {
	m.LastImage = image
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, input, image)
	}
	return &models.SaveResult{
		Article: &models.Article{ID: id, Title: input.Title},
		Image:   models.ImageResult{Status: models.ImageStatusSkipped},
	}, nil
}

func (m *MockArticleService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockArticleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockArticleService) SetPublished(ctx context.Context, ids []string, published bool) (int64, error) {
	if m.SetPublishedFunc != nil {
		return m.SetPublishedFunc(ctx, ids, published)
	}
	return int64(len(ids)), nil
}

// MockNewsService is a mock implementation of NewsService
type MockNewsService struct {
	HomeFunc     func(ctx context.Context) (*models.HomeFeed, error)
	ListFunc     func(ctx context.Context, page, pageSize int, categoryID int64) (*models.ArticlePage, error)
	DetailFunc   func(ctx context.Context, slug string) (*models.ArticleDetail, error)
	SearchFunc   func(ctx context.Context, q string) ([]*models.Article, error)
	MostReadFunc func(ctx context.Context, n int) ([]*models.Article, error)
}

var _ service.NewsService = (*MockNewsService)(nil)

func (m *MockNewsService) Home(ctx context.Context) (*models.HomeFeed, error) {
	if m.HomeFunc != nil {
		return m.HomeFunc(ctx)
	}
	return &models.HomeFeed{}, nil
}

func (m *MockNewsService) List(ctx context.Context, page, pageSize int, categoryID int64) (*models.ArticlePage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize, categoryID)
	}
	return &models.ArticlePage{Items: []*models.Article{}, Page: page, PageSize: pageSize}, nil
}

func (m *MockNewsService) Detail(ctx context.Context, slug string) (*models.ArticleDetail, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, slug)
	}
	return nil, models.ErrNotFound
}

func (m *MockNewsService) Search(ctx context.Context, q string) ([]*models.Article, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return []*models.Article{}, nil
}

func (m *MockNewsService) MostRead(ctx context.Context, n int) ([]*models.Article, error) {
	if m.MostReadFunc != nil {
		return m.MostReadFunc(ctx, n)
	}
	return []*models.Article{}, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	SubmitFunc      func(ctx context.Context, slug string, form *models.CommentForm) (*models.Comment, error)
	SetApprovedFunc func(ctx context.Context, ids []string, approved bool) (int64, error)
	Comments        []*models.Comment
}

var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) Submit(ctx context.Context, slug string, form *models.CommentForm) (*models.Comment, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, slug, form)
	}
	comment := &models.Comment{ID: "test-comment-id", Name: form.Name, Email: form.Email, Message: form.Message}
	m.Comments = append(m.Comments, comment)
	return comment, nil
}

func (m *MockCommentService) ListForArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	return m.Comments, nil
}

func (m *MockCommentService) List(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	out := make([]*models.Comment, 0, len(m.Comments))
	for _, c := range m.Comments {
		if approved == nil || c.IsApproved == *approved {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCommentService) SetApproved(ctx context.Context, ids []string, approved bool) (int64, error) {
	if m.SetApprovedFunc != nil {
		return m.SetApprovedFunc(ctx, ids, approved)
	}
	return int64(len(ids)), nil
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	SubmitFunc func(ctx context.Context, form *models.ContactForm) (*models.ContactMessage, error)
	Messages   []*models.ContactMessage
}

var _ service.ContactService = (*MockContactService)(nil)

func (m *MockContactService) Submit(ctx context.Context, form *models.ContactForm) (*models.ContactMessage, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, form)
	}
	msg := &models.ContactMessage{ID: "test-message-id", Name: form.Name, Email: form.Email, Subject: form.Subject, Message: form.Message}
	m.Messages = append(m.Messages, msg)
	return msg, nil
}

func (m *MockContactService) List(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error) {
	return m.Messages, nil
}

func (m *MockContactService) SetRead(ctx context.Context, ids []string, read bool) (int64, error) {
	return int64(len(ids)), nil
}

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	Categories []*models.Category
	DeleteFunc func(ctx context.Context, id int64) error
}

var _ service.CategoryService = (*MockCategoryService)(nil)

func (m *MockCategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	c := &models.Category{ID: int64(len(m.Categories) + 1), Name: name}
	m.Categories = append(m.Categories, c)
	return c, nil
}

func (m *MockCategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return m.Categories, nil
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAuthorService is a mock implementation of AuthorService
type MockAuthorService struct {
	DeleteFunc func(ctx context.Context, id string) error
}

var _ service.AuthorService = (*MockAuthorService)(nil)

func (m *MockAuthorService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = "test-author-id"
	return &u, nil
}

func (m *MockAuthorService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// NewMockServices wires every mock service into a service.Services
func NewMockServices() (*service.Services, *MockServices) {
	m := &MockServices{
		Article:  &MockArticleService{},
		News:     &MockNewsService{},
		Comment:  &MockCommentService{},
		Contact:  &MockContactService{},
		Category: &MockCategoryService{},
		Author:   &MockAuthorService{},
	}
	return &service.Services{
		Article:  m.Article,
		News:     m.News,
		Comment:  m.Comment,
		Contact:  m.Contact,
		Category: m.Category,
		Author:   m.Author,
	}, m
}

// MockServices gives tests typed access to the mocks behind a service.Services
type MockServices struct {
	Article  *MockArticleService
	News     *MockNewsService
	Comment  *MockCommentService
	Contact  *MockContactService
	Category *MockCategoryService
	Author   *MockAuthorService
}
