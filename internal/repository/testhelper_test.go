package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/news-portal-api/internal/database"
	"github.com/rs/zerolog"
)

// newMockDB opens a sqlmock-backed database and verifies expectations on cleanup
func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet SQL expectations: %v", err)
		}
		sqlDB.Close()
	})

	return database.Wrap(sqlDB, zerolog.Nop()), mock
}

var articleColumnNames = []string{
	"id", "title", "slug", "category_id", "content", "image", "author_id", "views", "reading_time",
	"is_published", "created_at", "updated_at", "published_at",
}

func articleRow(rows *sqlmock.Rows, id, slug string, views int64) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Title "+id, slug, int64(1), "some content", "news/2024/05/01/a.jpg",
		nil, views, 1, true, now, now, nil)
}
