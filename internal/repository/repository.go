package repository

import (
	"context"

	"braincards/internal/domain"
)

// CategoryRepository loads and saves the whole category store.
// Save replaces the stored sequence entirely, preserving order.
type CategoryRepository interface {
	Load(ctx context.Context) ([]domain.Category, error)
	Save(ctx context.Context, categories []domain.Category) error
}
