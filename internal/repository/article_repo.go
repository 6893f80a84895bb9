package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/news-portal-api/internal/database"
	"github.com/news-portal-api/internal/models"
)

const articleColumns = `id, title, slug, category_id, content, image, author_id, views, reading_time,
		is_published, created_at, updated_at, published_at`

// slugConstraint is the unique constraint guarding news.slug
const slugConstraint = "news_slug_key"

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO news (id, title, slug, category_id, content, image, author_id, views, reading_time,
			is_published, created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Slug, article.CategoryID, article.Content, article.Image,
		article.AuthorID, article.Views, article.ReadingTime, article.IsPublished,
		article.CreatedAt, article.UpdatedAt, article.PublishedAt,
	)
	return translateArticleError(err)
}

// Update writes every editable column of an existing article. Views are left
// untouched so a concurrent detail visit is never overwritten.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE news SET title = $2, slug = $3, category_id = $4, content = $5, image = $6,
			author_id = $7, reading_time = $8, is_published = $9, updated_at = $10, published_at = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Slug, article.CategoryID, article.Content, article.Image,
		article.AuthorID, article.ReadingTime, article.IsPublished, article.UpdatedAt, article.PublishedAt,
	)
	if err != nil {
		return translateArticleError(err)
	}
	return requireAffected(res)
}

// Delete removes an article and, by cascade, its comments
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// GetByID retrieves an article by ID regardless of its publication state
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM news WHERE id = $1", id)
	return scanArticleRow(row)
}

// GetPublishedBySlug retrieves a published article by slug
func (r *articleRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM news WHERE slug = $1 AND is_published = TRUE", slug)
	return scanArticleRow(row)
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM news WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// IncrementViews bumps the view counter of a published article in a single
// statement and returns the updated row
func (r *articleRepo) IncrementViews(ctx context.Context, slug string) (*models.Article, error) {
	query := `
		UPDATE news SET views = views + 1
		WHERE slug = $1 AND is_published = TRUE
		RETURNING ` + articleColumns
	return scanArticleRow(r.db.QueryRowContext(ctx, query, slug))
}

// List returns articles matching the filter
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	where, args := articleWhere(filter)

	query := "SELECT " + articleColumns + " FROM news" + where + " ORDER BY " + articleOrder(filter.OrderBy)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanArticles(rows)
}

// Count returns the number of articles matching the filter, ignoring paging
func (r *articleRepo) Count(ctx context.Context, filter models.ArticleFilter) (int, error) {
	where, args := articleWhere(filter)

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news"+where, args...).Scan(&count)
	return count, err
}

// Search matches published articles whose title or content contains the query, case-insensitively
func (r *articleRepo) Search(ctx context.Context, q string, limit int) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + ` FROM news
		WHERE is_published = TRUE
			AND (title ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, escapeLike(q), limit)
	if err != nil {
		return nil, err
	}
	return scanArticles(rows)
}

// Next returns the oldest published article created after the given time
func (r *articleRepo) Next(ctx context.Context, createdAt time.Time) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+` FROM news
		WHERE created_at > $1 AND is_published = TRUE ORDER BY created_at ASC LIMIT 1`, createdAt)
	return scanArticleRow(row)
}

// Previous returns the newest published article created before the given time
func (r *articleRepo) Previous(ctx context.Context, createdAt time.Time) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+` FROM news
		WHERE created_at < $1 AND is_published = TRUE ORDER BY created_at DESC LIMIT 1`, createdAt)
	return scanArticleRow(row)
}

// SetPublished flips the publication flag of the given articles. Publishing
// stamps published_at on articles that never had one.
func (r *articleRepo) SetPublished(ctx context.Context, ids []string, published bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE news SET is_published = $2, updated_at = NOW(),
			published_at = CASE WHEN $2 THEN COALESCE(published_at, NOW()) ELSE published_at END
		WHERE id = ANY($1)
	`
	res, err := r.db.ExecContext(ctx, query, pq.Array(ids), published)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func articleWhere(filter models.ArticleFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.PublishedOnly {
		conds = append(conds, "is_published = TRUE")
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func articleOrder(order string) string {
	switch order {
	case models.OrderLatestPublish, models.OrderMostViewed:
		return order + ", created_at DESC"
	default:
		return models.OrderNewest
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(s rowScanner) (*models.Article, error) {
	var article models.Article
	var content, authorID sql.NullString
	var publishedAt sql.NullTime

	err := s.Scan(
		&article.ID, &article.Title, &article.Slug, &article.CategoryID, &content, &article.Image,
		&authorID, &article.Views, &article.ReadingTime, &article.IsPublished,
		&article.CreatedAt, &article.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	if content.Valid {
		article.Content = &content.String
	}
	if authorID.Valid {
		article.AuthorID = &authorID.String
	}
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	return &article, nil
}

func scanArticleRow(row *sql.Row) (*models.Article, error) {
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return article, err
}

func scanArticles(rows *sql.Rows) ([]*models.Article, error) {
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func translateArticleError(err error) error {
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err, slugConstraint):
		return fmt.Errorf("%w: %v", models.ErrSlugTaken, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", models.ErrInvalidReference, err)
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards so the query is matched literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
