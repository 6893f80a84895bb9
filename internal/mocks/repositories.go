package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
)

// MemoryDB is the shared in-memory state behind the mock repositories. It
// applies the same cascades as the SQL schema: deleting a category removes its
// articles, deleting an article removes its comments, and deleting a user
// clears article authors.
type MemoryDB struct {
	mu             sync.Mutex
	Articles       map[string]*models.Article
	Comments       map[string]*models.Comment
	Contacts       map[string]*models.ContactMessage
	Categories     map[int64]*models.Category
	Users          map[string]*models.User
	nextCategoryID int64
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		Articles:   make(map[string]*models.Article),
		Comments:   make(map[string]*models.Comment),
		Contacts:   make(map[string]*models.ContactMessage),
		Categories: make(map[int64]*models.Category),
		Users:      make(map[string]*models.User),
	}
}

// NewRepositories creates mock repositories sharing one MemoryDB
func NewRepositories() (*repository.Repositories, *MemoryDB) {
	db := NewMemoryDB()
	return &repository.Repositories{
		Article:  NewMockArticleRepository(db),
		Comment:  NewMockCommentRepository(db),
		Contact:  NewMockContactRepository(db),
		Category: NewMockCategoryRepository(db),
		User:     NewMockUserRepository(db),
	}, db
}

// deleteArticleLocked removes an article and its comments. Caller holds mu.
func (db *MemoryDB) deleteArticleLocked(id string) {
	delete(db.Articles, id)
	for cid, c := range db.Comments {
		if c.ArticleID == id {
			delete(db.Comments, cid)
		}
	}
}

func cloneArticle(a *models.Article) *models.Article {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	db              *MemoryDB
	InsertError     error
	UpdateError     error
	SlugExistsCalls int
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository(db *MemoryDB) *MockArticleRepository {
	return &MockArticleRepository{db: db}
}

func (m *MockArticleRepository) slugTakenLocked(slug, exceptID string) bool {
	for _, a := range m.db.Articles {
		if a.Slug == slug && a.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *MockArticleRepository) checkRefsLocked(article *models.Article) error {
	if _, ok := m.db.Categories[article.CategoryID]; !ok {
		return models.ErrInvalidReference
	}
	if article.AuthorID != nil {
		if _, ok := m.db.Users[*article.AuthorID]; !ok {
			return models.ErrInvalidReference
		}
	}
	return nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if m.slugTakenLocked(article.Slug, "") {
		return models.ErrSlugTaken
	}
	if err := m.checkRefsLocked(article); err != nil {
		return err
	}
	m.db.Articles[article.ID] = cloneArticle(article)
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	stored, ok := m.db.Articles[article.ID]
	if !ok {
		return models.ErrNotFound
	}
	if m.slugTakenLocked(article.Slug, article.ID) {
		return models.ErrSlugTaken
	}
	if err := m.checkRefsLocked(article); err != nil {
		return err
	}
	updated := cloneArticle(article)
	updated.Views = stored.Views
	m.db.Articles[article.ID] = updated
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.Articles[id]; !ok {
		return models.ErrNotFound
	}
	m.db.deleteArticleLocked(id)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return cloneArticle(m.db.Articles[id]), nil
}

func (m *MockArticleRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, a := range m.db.Articles {
		if a.Slug == slug && a.IsPublished {
			return cloneArticle(a), nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.SlugExistsCalls++
	return m.slugTakenLocked(slug, ""), nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, slug string) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, a := range m.db.Articles {
		if a.Slug == slug && a.IsPublished {
			a.Views++
			return cloneArticle(a), nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) filterLocked(filter models.ArticleFilter) []*models.Article {
	var out []*models.Article
	for _, a := range m.db.Articles {
		if filter.PublishedOnly && !a.IsPublished {
			continue
		}
		if filter.CategoryID > 0 && a.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, cloneArticle(a))
	}
	return out
}

func sortArticles(articles []*models.Article, order string) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		switch order {
		case models.OrderMostViewed:
			if a.Views != b.Views {
				return a.Views > b.Views
			}
		case models.OrderLatestPublish:
			switch {
			case a.PublishedAt == nil && b.PublishedAt != nil:
				return false
			case a.PublishedAt != nil && b.PublishedAt == nil:
				return true
			case a.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt):
				return a.PublishedAt.After(*b.PublishedAt)
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func page(articles []*models.Article, offset, limit int) []*models.Article {
	if offset >= len(articles) {
		return []*models.Article{}
	}
	articles = articles[offset:]
	if limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	return articles
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := m.filterLocked(filter)
	sortArticles(out, filter.OrderBy)
	return page(out, filter.Offset, filter.Limit), nil
}

func (m *MockArticleRepository) Count(ctx context.Context, filter models.ArticleFilter) (int, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return len(m.filterLocked(filter)), nil
}

func (m *MockArticleRepository) Search(ctx context.Context, q string, limit int) ([]*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	q = strings.ToLower(q)
	var out []*models.Article
	for _, a := range m.filterLocked(models.ArticleFilter{PublishedOnly: true}) {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.ContentText()), q) {
			out = append(out, a)
		}
	}
	sortArticles(out, models.OrderNewest)
	return page(out, 0, limit), nil
}

func (m *MockArticleRepository) Next(ctx context.Context, createdAt time.Time) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var next *models.Article
	for _, a := range m.filterLocked(models.ArticleFilter{PublishedOnly: true}) {
		if a.CreatedAt.After(createdAt) && (next == nil || a.CreatedAt.Before(next.CreatedAt)) {
			next = a
		}
	}
	return next, nil
}

func (m *MockArticleRepository) Previous(ctx context.Context, createdAt time.Time) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var prev *models.Article
	for _, a := range m.filterLocked(models.ArticleFilter{PublishedOnly: true}) {
		if a.CreatedAt.Before(createdAt) && (prev == nil || a.CreatedAt.After(prev.CreatedAt)) {
			prev = a
		}
	}
	return prev, nil
}

func (m *MockArticleRepository) SetPublished(ctx context.Context, ids []string, published bool) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var n int64
	now := time.Now().UTC()
	for _, id := range ids {
		a, ok := m.db.Articles[id]
		if !ok {
			continue
		}
		a.IsPublished = published
		if published && a.PublishedAt == nil {
			a.PublishedAt = &now
		}
		n++
	}
	return n, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	db          *MemoryDB
	InsertError error
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository(db *MemoryDB) *MockCommentRepository {
	return &MockCommentRepository{db: db}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.Articles[comment.ArticleID]; !ok {
		return models.ErrInvalidReference
	}
	c := *comment
	m.db.Comments[c.ID] = &c
	return nil
}

func (m *MockCommentRepository) approvedLocked(articleID string) []*models.Comment {
	var out []*models.Comment
	for _, c := range m.db.Comments {
		if c.ArticleID == articleID && c.IsApproved {
			cc := *c
			out = append(out, &cc)
		}
	}
	sortComments(out)
	return out
}

func sortComments(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
}

func (m *MockCommentRepository) ListApproved(ctx context.Context, articleID string, limit int) ([]*models.Comment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := m.approvedLocked(articleID)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCommentRepository) CountApproved(ctx context.Context, articleID string) (int, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return len(m.approvedLocked(articleID)), nil
}

func (m *MockCommentRepository) List(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := make([]*models.Comment, 0, len(m.db.Comments))
	for _, c := range m.db.Comments {
		if approved != nil && c.IsApproved != *approved {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	sortComments(out)
	return out, nil
}

func (m *MockCommentRepository) SetApproved(ctx context.Context, ids []string, approved bool) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var n int64
	for _, id := range ids {
		if c, ok := m.db.Comments[id]; ok {
			c.IsApproved = approved
			n++
		}
	}
	return n, nil
}

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	db          *MemoryDB
	InsertError error
}

var _ repository.ContactRepository = (*MockContactRepository)(nil)

func NewMockContactRepository(db *MemoryDB) *MockContactRepository {
	return &MockContactRepository{db: db}
}

func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c := *msg
	m.db.Contacts[c.ID] = &c
	return nil
}

func (m *MockContactRepository) List(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := make([]*models.ContactMessage, 0, len(m.db.Contacts))
	for _, c := range m.db.Contacts {
		if unreadOnly && c.IsRead {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockContactRepository) SetRead(ctx context.Context, ids []string, read bool) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var n int64
	for _, id := range ids {
		if c, ok := m.db.Contacts[id]; ok {
			c.IsRead = read
			n++
		}
	}
	return n, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	db *MemoryDB
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func NewMockCategoryRepository(db *MemoryDB) *MockCategoryRepository {
	return &MockCategoryRepository{db: db}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, c := range m.db.Categories {
		if c.Name == category.Name {
			return models.ErrDuplicate
		}
	}
	m.db.nextCategoryID++
	category.ID = m.db.nextCategoryID
	c := *category
	m.db.Categories[c.ID] = &c
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	c, ok := m.db.Categories[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := make([]*models.Category, 0, len(m.db.Categories))
	for _, c := range m.db.Categories {
		cc := *c
		cc.NewsCount = 0
		for _, a := range m.db.Articles {
			if a.CategoryID == c.ID {
				cc.NewsCount++
			}
		}
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.Categories[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.db.Categories, id)
	for aid, a := range m.db.Articles {
		if a.CategoryID == id {
			m.db.deleteArticleLocked(aid)
		}
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	db *MemoryDB
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository(db *MemoryDB) *MockUserRepository {
	return &MockUserRepository{db: db}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, u := range m.db.Users {
		if u.Username == user.Username {
			return models.ErrDuplicate
		}
	}
	u := *user
	m.db.Users[u.ID] = &u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	u, ok := m.db.Users[id]
	if !ok {
		return nil, nil
	}
	uu := *u
	return &uu, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.Users[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.db.Users, id)
	for _, a := range m.db.Articles {
		if a.AuthorID != nil && *a.AuthorID == id {
			a.AuthorID = nil
		}
	}
	return nil
}
