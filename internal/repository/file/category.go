package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"braincards/internal/domain"
)

// CategoryRepo implements repository.CategoryRepository on a single JSON file
type CategoryRepo struct {
	path string
}

// NewCategoryRepo creates a repository backed by the file at path
func NewCategoryRepo(path string) *CategoryRepo {
	return &CategoryRepo{path: path}
}

// Path returns the backing file path
func (r *CategoryRepo) Path() string {
	return r.path
}

// Ensure creates the store file with an empty array if it does not exist.
// An existing file is left untouched. Reports whether the file was created.
func (r *CategoryRepo) Ensure(ctx context.Context) (bool, error) {
	_, err := os.Stat(r.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to check store %s: %w", r.path, err)
	}

	if err := r.Save(ctx, []domain.Category{}); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads and parses the whole store
func (r *CategoryRepo) Load(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", r.path, err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", r.path, err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// Save serializes categories and overwrites the store file.
// The write is not atomic: a crash mid-write can truncate the file.
func (r *CategoryRepo) Save(ctx context.Context, categories []domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", r.path, err)
	}
	return nil
}
