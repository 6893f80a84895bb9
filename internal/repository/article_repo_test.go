package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/news-portal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepo_IncrementViewsIsSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE news SET views = views + 1")).
		WithArgs("hello-world").
		WillReturnRows(articleRow(sqlmock.NewRows(articleColumnNames), "a1", "hello-world", 6))

	article, err := repo.IncrementViews(context.Background(), "hello-world")
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, int64(6), article.Views)
	assert.Equal(t, "some content", article.ContentText())
	assert.Nil(t, article.AuthorID)
	assert.Nil(t, article.PublishedAt)
}

func TestArticleRepo_IncrementViewsUnknownSlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE news SET views = views + 1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(articleColumnNames))

	article, err := repo.IncrementViews(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestArticleRepo_CreateSlugConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO news")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "news_slug_key"})

	now := time.Now()
	err := repo.Create(context.Background(), &models.Article{
		ID: "a1", Title: "Hello", Slug: "hello", CategoryID: 1, CreatedAt: now, UpdatedAt: now,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSlugTaken))
}

func TestArticleRepo_CreateUnknownCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO news")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "news_category_id_fkey"})

	err := repo.Create(context.Background(), &models.Article{ID: "a1", Title: "Hello", Slug: "hello", CategoryID: 99})
	assert.True(t, errors.Is(err, models.ErrInvalidReference))
}

func TestArticleRepo_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE news SET title = $2")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Article{ID: "gone", Title: "x", Slug: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestArticleRepo_SlugExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM news WHERE slug = $1)")).
		WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestArticleRepo_ListBuildsFilteredQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	rows := sqlmock.NewRows(articleColumnNames)
	articleRow(rows, "a1", "first", 10)
	articleRow(rows, "a2", "second", 3)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM news WHERE is_published = TRUE AND category_id = $1 ORDER BY views DESC, created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs(int64(3), 10, 20).
		WillReturnRows(rows)

	articles, err := repo.List(context.Background(), models.ArticleFilter{
		CategoryID:    3,
		PublishedOnly: true,
		OrderBy:       models.OrderMostViewed,
		Limit:         10,
		Offset:        20,
	})
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "first", articles[0].Slug)
}

func TestArticleRepo_ListRejectsUnknownOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title")).
		WillReturnRows(sqlmock.NewRows(articleColumnNames))

	_, err := repo.List(context.Background(), models.ArticleFilter{OrderBy: "1; DROP TABLE news"})
	require.NoError(t, err)
}

func TestArticleRepo_SearchEscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("title ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%'")).
		WithArgs(`50\%\_off`, 20).
		WillReturnRows(sqlmock.NewRows(articleColumnNames))

	results, err := repo.Search(context.Background(), "50%_off", 20)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestArticleRepo_SetPublished(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE news SET is_published = $2")).
		WithArgs(sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.SetPublished(context.Background(), []string{"a1", "a2"}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.SetPublished(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
