package services

import (
	"context"
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// Option names in the options table
const (
	OptionCategories = "categories"
	OptionPriorities = "priorities"
	OptionSettings   = "settings"
)

// NewCache creates the process-wide cache shared by the taxonomy and settings services
func NewCache() *gocache.Cache {
	return gocache.New(gocache.NoExpiration, 0)
}

// TaxonomyService owns the category and priority vocabularies. Both are read
// once into the cache and reloaded after every save.
type TaxonomyService struct {
	cache   *gocache.Cache
	options ports.OptionsStore
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(options ports.OptionsStore, cache *gocache.Cache) *TaxonomyService {
	return &TaxonomyService{
		cache:   cache,
		options: options,
	}
}

// Categories returns the configured categories
func (s *TaxonomyService) Categories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cache.Get(OptionCategories); ok {
		return cached.([]domain.Category), nil
	}

	var categories []domain.Category
	if _, err := s.options.GetOption(ctx, OptionCategories, &categories); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	s.cache.Set(OptionCategories, categories, gocache.NoExpiration)
	logging.Logger.Debug("Categories loaded", "count", len(categories))
	return categories, nil
}

// Priorities returns the configured priorities, or the defaults when none were saved
func (s *TaxonomyService) Priorities(ctx context.Context) ([]domain.Priority, error) {
	if cached, ok := s.cache.Get(OptionPriorities); ok {
		return cached.([]domain.Priority), nil
	}

	var priorities []domain.Priority
	found, err := s.options.GetOption(ctx, OptionPriorities, &priorities)
	if err != nil {
		return nil, fmt.Errorf("failed to load priorities: %w", err)
	}
	if !found || len(priorities) == 0 {
		priorities = domain.DefaultPriorities()
	}

	s.cache.Set(OptionPriorities, priorities, gocache.NoExpiration)
	logging.Logger.Debug("Priorities loaded", "count", len(priorities))
	return priorities, nil
}

// SaveCategories replaces the whole category collection
func (s *TaxonomyService) SaveCategories(ctx context.Context, categories []domain.Category) ([]domain.Category, error) {
	normalized, err := domain.NormalizeCategories(categories)
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Saving categories", "count", len(normalized))
	if err := s.options.SetOption(ctx, OptionCategories, normalized); err != nil {
		logging.Logger.Error("Failed to save categories", "error", err)
		return nil, fmt.Errorf("failed to save categories: %w", err)
	}

	s.cache.Delete(OptionCategories)
	return s.Categories(ctx)
}

// SavePriorities replaces the whole priority collection. Keys are recomputed from names.
func (s *TaxonomyService) SavePriorities(ctx context.Context, priorities []domain.Priority) ([]domain.Priority, error) {
	normalized, err := domain.NormalizePriorities(priorities)
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Saving priorities", "count", len(normalized))
	if err := s.options.SetOption(ctx, OptionPriorities, normalized); err != nil {
		logging.Logger.Error("Failed to save priorities", "error", err)
		return nil, fmt.Errorf("failed to save priorities: %w", err)
	}

	s.cache.Delete(OptionPriorities)
	return s.Priorities(ctx)
}

// Reload drops the cached vocabularies so the next read goes to the store
func (s *TaxonomyService) Reload() {
	s.cache.Delete(OptionCategories)
	s.cache.Delete(OptionPriorities)
}

// CheckPriority returns the canonical key for raw, which may be a key or a
// priority name. Built-in keys are always accepted.
func (s *TaxonomyService) CheckPriority(ctx context.Context, raw string) (string, error) {
	key := domain.PriorityKey(raw)
	if key == "" {
		return "", domain.NewValidationError("priority", "is required")
	}
	if domain.IsBuiltinPriority(key) {
		return key, nil
	}

	priorities, err := s.Priorities(ctx)
	if err != nil {
		return "", err
	}
	if !domain.HasPriority(priorities, key) {
		return "", domain.NewValidationError("priority", fmt.Sprintf("unknown priority %q", raw))
	}
	return key, nil
}

// CheckCategory returns the configured spelling of name. An empty name clears the category.
func (s *TaxonomyService) CheckCategory(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return "", err
	}
	category, ok := domain.FindCategory(categories, name)
	if !ok {
		return "", domain.NewValidationError("category", fmt.Sprintf("unknown category %q", name))
	}
	return category.Name, nil
}
