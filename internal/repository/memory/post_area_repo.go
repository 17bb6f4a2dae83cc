package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"job-posting-backend/internal/domain"

	"github.com/google/uuid"
)

// ErrDuplicateName mirrors the UNIQUE constraint on post_areas.name.
var ErrDuplicateName = errors.New("post area name already exists")

type PostAreaRepository struct {
	mu    sync.RWMutex
	areas map[uuid.UUID]domain.PostArea
}

func NewPostAreaRepository() *PostAreaRepository {
	return &PostAreaRepository{areas: make(map[uuid.UUID]domain.PostArea)}
}

// Add stores a new area under parent, which may be nil for a category.
// Names are unique across categories and subcategories.
func (r *PostAreaRepository) Add(name string, parent *domain.PostArea) (domain.PostArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.areas {
		if a.Name == name {
			return domain.PostArea{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	area := domain.PostArea{ID: uuid.New(), Name: name}
	if parent != nil {
		id := parent.ID
		area.ParentID = &id
	}
	r.areas[area.ID] = area
	return area, nil
}

// MustAdd is Add for fixtures; it panics on a duplicate name.
func (r *PostAreaRepository) MustAdd(name string, parent *domain.PostArea) domain.PostArea {
	area, err := r.Add(name, parent)
	if err != nil {
		panic(err)
	}
	return area
}

func (r *PostAreaRepository) FindByName(ctx context.Context, name string) (*domain.PostArea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.areas {
		if a.Name != name {
			continue
		}
		found := a
		if a.ParentID != nil {
			if parent, ok := r.areas[*a.ParentID]; ok {
				found.Parent = &parent
			}
		}
		return &found, nil
	}
	return nil, nil
}

func (r *PostAreaRepository) FetchRoots(ctx context.Context) ([]domain.PostArea, error) {
	return r.collect(func(a domain.PostArea) bool { return a.ParentID == nil }), nil
}

func (r *PostAreaRepository) FetchChildren(ctx context.Context, parentID uuid.UUID) ([]domain.PostArea, error) {
	return r.collect(func(a domain.PostArea) bool {
		return a.ParentID != nil && *a.ParentID == parentID
	}), nil
}

func (r *PostAreaRepository) collect(keep func(domain.PostArea) bool) []domain.PostArea {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.PostArea{}
	for _, a := range r.areas {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
