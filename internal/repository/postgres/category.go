package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"braincards/internal/domain"
)

// CategoryRepo implements repository.CategoryRepository on PostgreSQL
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Load returns all categories in insertion order
func (r *CategoryRepo) Load(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, title, pairs
		FROM categories
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		var pairs []byte
		if err := rows.Scan(&c.ID, &c.Title, &pairs); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if err := json.Unmarshal(pairs, &c.Pairs); err != nil {
			return nil, fmt.Errorf("failed to decode pairs of category %s: %w", c.ID, err)
		}
		if c.Pairs == nil {
			c.Pairs = []domain.Pair{}
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Save replaces the stored categories with the given sequence in one transaction
func (r *CategoryRepo) Save(ctx context.Context, categories []domain.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	query := `
		INSERT INTO categories (id, title, pairs)
		VALUES ($1, $2, $3)
	`
	for _, c := range categories {
		pairs := c.Pairs
		if pairs == nil {
			pairs = []domain.Pair{}
		}
		encoded, err := json.Marshal(pairs)
		if err != nil {
			return fmt.Errorf("failed to encode pairs of category %s: %w", c.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Title, encoded); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit categories: %w", err)
	}
	return nil
}
