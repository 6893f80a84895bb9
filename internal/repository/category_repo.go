package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/news-portal-api/internal/database"
	"github.com/news-portal-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// Create inserts a category and fills in its generated ID
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (name, created_at) VALUES ($1, $2) RETURNING id",
		category.Name, category.CreatedAt,
	).Scan(&category.ID)
	if database.IsUniqueViolation(err, "") {
		return fmt.Errorf("category %q %w", category.Name, models.ErrDuplicate)
	}
	return err
}

// GetByID retrieves a category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM categories WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name, with their article counts
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT c.id, c.name, c.created_at, COUNT(n.id)
		FROM categories c
		LEFT JOIN news n ON n.category_id = c.id
		GROUP BY c.id, c.name, c.created_at
		ORDER BY c.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.NewsCount); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Delete removes a category; its articles are removed by the foreign key cascade
func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
