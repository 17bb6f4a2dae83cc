package usecase

import (
	"context"
	"fmt"

	"job-posting-backend/internal/domain"
)

// CategoryResolver turns category names into PostAreas and checks that a
// subcategory sits under the chosen category.
type CategoryResolver struct {
	areas domain.PostAreaRepository
}

func NewCategoryResolver(areas domain.PostAreaRepository) *CategoryResolver {
	return &CategoryResolver{areas: areas}
}

// ResolveCategory returns nil for an empty name.
func (r *CategoryResolver) ResolveCategory(ctx context.Context, name string) (*domain.PostArea, error) {
	return r.lookup(ctx, name)
}

// ResolveSubcategory returns nil for an empty name. The returned area has its
// Parent populated when it has one.
func (r *CategoryResolver) ResolveSubcategory(ctx context.Context, name string) (*domain.PostArea, error) {
	return r.lookup(ctx, name)
}

func (r *CategoryResolver) lookup(ctx context.Context, name string) (*domain.PostArea, error) {
	if name == "" {
		return nil, nil
	}
	area, err := r.areas.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve post area %q: %w", name, err)
	}
	if area == nil {
		return nil, &domain.CategoryNotFoundError{Name: name}
	}
	return area, nil
}

// Resolve returns the effective category and subcategory. When only a
// subcategory is named its parent becomes the category.
func (r *CategoryResolver) Resolve(ctx context.Context, categoryName, subcategoryName string) (*domain.PostArea, *domain.PostArea, error) {
	category, err := r.ResolveCategory(ctx, categoryName)
	if err != nil {
		return nil, nil, err
	}
	subcategory, err := r.ResolveSubcategory(ctx, subcategoryName)
	if err != nil {
		return nil, nil, err
	}
	if subcategory == nil {
		return category, nil, nil
	}

	if category != nil {
		if !subcategory.BelongsTo(category) {
			return nil, nil, &domain.InvalidCategoriesError{Parent: category.Name, Child: subcategory.Name}
		}
		return category, subcategory, nil
	}

	if subcategory.IsRoot() {
		return nil, nil, &domain.InvalidCategoriesError{Child: subcategory.Name}
	}
	if subcategory.Parent == nil {
		return nil, nil, fmt.Errorf("resolve post area %q: parent %s not loaded", subcategory.Name, subcategory.ParentID)
	}
	return subcategory.Parent, subcategory, nil
}
