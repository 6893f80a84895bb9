package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/news-portal-api/internal/database"
	"github.com/news-portal-api/internal/models"
)

const commentColumns = "id, news_id, name, email, message, is_approved, created_at"

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, news_id, name, email, message, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.Name, comment.Email, comment.Message,
		comment.IsApproved, comment.CreatedAt,
	)
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", models.ErrInvalidReference, err)
	}
	return err
}

// ListApproved returns the newest approved comments of an article. A limit
// of zero returns all of them.
func (r *commentRepo) ListApproved(ctx context.Context, articleID string, limit int) ([]*models.Comment, error) {
	query := "SELECT " + commentColumns + `
		FROM comments WHERE news_id = $1 AND is_approved = TRUE
		ORDER BY created_at DESC LIMIT NULLIF($2, 0)`
	rows, err := r.db.QueryContext(ctx, query, articleID, limit)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

// CountApproved returns the number of approved comments on an article
func (r *commentRepo) CountApproved(ctx context.Context, articleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE news_id = $1 AND is_approved = TRUE", articleID).Scan(&count)
	return count, err
}

// List returns comments for moderation, optionally filtered by approval state
func (r *commentRepo) List(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments"
	var args []interface{}
	if approved != nil {
		query += " WHERE is_approved = $1"
		args = append(args, *approved)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

// SetApproved sets the approval flag on the given comments
func (r *commentRepo) SetApproved(ctx context.Context, ids []string, approved bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE comments SET is_approved = $2 WHERE id = ANY($1)", pq.Array(ids), approved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanComments(rows *sql.Rows) ([]*models.Comment, error) {
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.Name, &c.Email, &c.Message, &c.IsApproved, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
