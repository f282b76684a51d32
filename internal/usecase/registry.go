package usecase

import (
	"fmt"

	"tpp-demo/internal/domain"
)

type position struct {
	category int
	index    int
}

// Registry is the immutable catalogue of categories and their use cases.
type Registry struct {
	categories []domain.Category
	byID       map[string]position
}

// NewRegistry validates the catalogue and indexes use cases by id. Use cases
// without steps and duplicate ids are rejected here so navigation never has
// to deal with them.
func NewRegistry(categories []domain.Category) (*Registry, error) {
	r := &Registry{
		categories: categories,
		byID:       make(map[string]position),
	}
	for ci, c := range categories {
		if len(c.UseCases) == 0 {
			return nil, fmt.Errorf("category %q has no use cases: %w", c.ID, domain.ErrEmptyUseCase)
		}
		for ui, uc := range c.UseCases {
			if uc.ID == "" {
				return nil, fmt.Errorf("category %q, use case %d has no id: %w", c.ID, ui, domain.ErrUnknownUseCase)
			}
			if len(uc.Steps) == 0 {
				return nil, fmt.Errorf("use case %q: %w", uc.ID, domain.ErrEmptyUseCase)
			}
			if _, dup := r.byID[uc.ID]; dup {
				return nil, fmt.Errorf("use case %q: %w", uc.ID, domain.ErrDuplicateUseCase)
			}
			r.byID[uc.ID] = position{category: ci, index: ui}
		}
	}
	return r, nil
}

// Categories returns the catalogue in display order.
func (r *Registry) Categories() []domain.Category {
	return r.categories
}

// Category looks a category up by id.
func (r *Registry) Category(id string) (domain.Category, bool) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// Lookup returns the use case with the given id together with its category.
func (r *Registry) Lookup(useCaseID string) (domain.UseCase, domain.Category, int, error) {
	pos, ok := r.byID[useCaseID]
	if !ok {
		return domain.UseCase{}, domain.Category{}, 0, fmt.Errorf("use case %q: %w", useCaseID, domain.ErrUnknownUseCase)
	}
	c := r.categories[pos.category]
	return c.UseCases[pos.index], c, pos.index, nil
}

// UseCaseAt returns the use case at index within a category.
func (r *Registry) UseCaseAt(categoryID string, index int) (domain.UseCase, error) {
	c, ok := r.Category(categoryID)
	if !ok {
		return domain.UseCase{}, fmt.Errorf("category %q: %w", categoryID, domain.ErrUnknownUseCase)
	}
	if index < 0 || index >= len(c.UseCases) {
		return domain.UseCase{}, fmt.Errorf("use case index %d in category %q: %w", index, categoryID, domain.ErrUnknownUseCase)
	}
	return c.UseCases[index], nil
}
