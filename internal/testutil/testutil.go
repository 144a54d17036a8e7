package testutil

import (
	"braincards/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCategory creates a test category from word-definition pairs
func NewTestCategory(id, title string, pairs ...domain.Pair) domain.Category {
	if pairs == nil {
		pairs = []domain.Pair{}
	}
	return domain.Category{
		ID:    id,
		Title: title,
		Pairs: pairs,
	}
}

// FixedID returns an id generator that always yields id
func FixedID(id string) func() (string, error) {
	return func() (string, error) {
		return id, nil
	}
}
