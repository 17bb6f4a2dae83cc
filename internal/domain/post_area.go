package domain

import (
	"context"

	"github.com/google/uuid"
)

// PostArea is a category or, when it has a parent, a subcategory.
type PostArea struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	Parent   *PostArea  `json:"-"`
}

// IsRoot reports whether the area is a top level category.
func (a *PostArea) IsRoot() bool {
	return a.ParentID == nil
}

// BelongsTo reports whether a is a direct child of parent.
func (a *PostArea) BelongsTo(parent *PostArea) bool {
	return a.ParentID != nil && parent != nil && *a.ParentID == parent.ID
}

// CategoryNode is a category with its subcategories.
type CategoryNode struct {
	PostArea
	Subcategories []PostArea `json:"subcategories"`
}

type PostAreaRepository interface {
	// FindByName returns (nil, nil) when no area has that name. Parent is
	// populated for subcategories.
	FindByName(ctx context.Context, name string) (*PostArea, error)
	FetchRoots(ctx context.Context) ([]PostArea, error)
	FetchChildren(ctx context.Context, parentID uuid.UUID) ([]PostArea, error)
}

type PostAreaUsecase interface {
	ListCategoryTree(ctx context.Context) ([]CategoryNode, error)
}
