package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/news-portal-api/internal/database"
	"github.com/news-portal-api/internal/models"
)

// contactRepo is the concrete implementation of ContactRepository
type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact message repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

// Create inserts a new contact message
func (r *contactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.IsRead, msg.CreatedAt,
	)
	return err
}

// List returns contact messages newest first
func (r *contactRepo) List(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error) {
	query := "SELECT id, name, email, subject, message, is_read, created_at FROM contact_messages"
	if unreadOnly {
		query += " WHERE is_read = FALSE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.ContactMessage, 0)
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// SetRead sets the read flag on the given messages
func (r *contactRepo) SetRead(ctx context.Context, ids []string, read bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE contact_messages SET is_read = $2 WHERE id = ANY($1)", pq.Array(ids), read)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
