package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/news-portal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepo_ListApproved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE news_id = $1 AND is_approved = TRUE")).
		WithArgs("a1", models.LatestCommentsOnDetail).
		WillReturnRows(sqlmock.NewRows([]string{"id", "news_id", "name", "email", "message", "is_approved", "created_at"}).
			AddRow("c1", "a1", "Ann", "ann@example.com", "Nice", true, now))

	comments, err := repo.ListApproved(context.Background(), "a1", models.LatestCommentsOnDetail)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Ann", comments[0].Name)
	assert.True(t, comments[0].IsApproved)
}

func TestCommentRepo_ListFiltersByApproval(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)

	pending := false
	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE is_approved = $1 ORDER BY created_at DESC")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "news_id", "name", "email", "message", "is_approved", "created_at"}))

	comments, err := repo.List(context.Background(), &pending)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepo_SetApproved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET is_approved = $2 WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.SetApproved(context.Background(), []string{"c1", "c2", "c3"}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
