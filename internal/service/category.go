package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"braincards/internal/domain"
	"braincards/internal/repository"

	"go.uber.org/zap"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	repo   repository.CategoryRepository
	newID  IDGenerator
	logger *zap.Logger

	// guards the load-append-save cycle of Create
	mu sync.Mutex
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		newID:  NewCategoryID,
		logger: logger,
	}
}

// WithIDGenerator replaces the id generator
func (s *CategoryService) WithIDGenerator(gen IDGenerator) *CategoryService {
	s.newID = gen
	return s
}

// Create validates the decoded request body, appends a new category to the
// store and returns it. Validation failures are returned as *APIError with
// status 400; the store is not touched in that case.
func (s *CategoryService) Create(ctx context.Context, input map[string]any) (*domain.Category, error) {
	title, pairs, err := validateCreateInput(input)
	if err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	category := domain.Category{
		ID:    id,
		Title: title,
		Pairs: pairs,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if err := s.repo.Save(ctx, append(categories, category)); err != nil {
		return nil, fmt.Errorf("failed to save categories: %w", err)
	}

	s.logger.Info("Category created",
		zap.String("id", category.ID),
		zap.String("title", category.Title),
		zap.Int("pairs", len(category.Pairs)),
	)

	return &category, nil
}

// List returns every category without its pairs
func (s *CategoryService) List(ctx context.Context) ([]domain.CategorySummary, error) {
	categories, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	summaries := make([]domain.CategorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, c.Summary())
	}
	return summaries, nil
}

// Get returns the category with the exact given id, or ErrNotFound
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	categories, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	for i := range categories {
		if categories[i].ID == id {
			if categories[i].Pairs == nil {
				categories[i].Pairs = []domain.Pair{}
			}
			return &categories[i], nil
		}
	}

	return nil, ErrNotFound
}

// validateCreateInput checks title, then pairs; only the first element is
// checked for being an array before every pair is checked in full
func validateCreateInput(input map[string]any) (string, []domain.Pair, error) {
	title, ok := input["title"].(string)
	if !ok || title == "" {
		return "", nil, NewAPIError(http.StatusBadRequest, MsgTitleRequired)
	}

	raw, present := input["pairs"]
	if !present {
		return title, []domain.Pair{}, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return "", nil, NewAPIError(http.StatusBadRequest, MsgPairsNotArray)
	}

	if len(items) > 0 {
		if _, ok := items[0].([]any); !ok {
			return "", nil, NewAPIError(http.StatusBadRequest, MsgPairsOnlyArrays)
		}
	}

	pairs := make([]domain.Pair, 0, len(items))
	for _, item := range items {
		pair, ok := toPair(item)
		if !ok {
			return "", nil, NewAPIError(http.StatusBadRequest, MsgPairsMalformed)
		}
		pairs = append(pairs, pair)
	}

	return title, pairs, nil
}

func toPair(item any) (domain.Pair, bool) {
	elems, ok := item.([]any)
	if !ok || len(elems) != 2 {
		return domain.Pair{}, false
	}
	word, ok := elems[0].(string)
	if !ok {
		return domain.Pair{}, false
	}
	definition, ok := elems[1].(string)
	if !ok {
		return domain.Pair{}, false
	}
	return domain.Pair{word, definition}, true
}
