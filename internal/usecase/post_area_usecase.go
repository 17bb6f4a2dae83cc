package usecase

import (
	"context"

	"job-posting-backend/internal/domain"
)

type postAreaUsecase struct {
	repo domain.PostAreaRepository
}

func NewPostAreaUsecase(repo domain.PostAreaRepository) domain.PostAreaUsecase {
	return &postAreaUsecase{repo: repo}
}

// ListCategoryTree returns every category with its subcategories.
func (u *postAreaUsecase) ListCategoryTree(ctx context.Context) ([]domain.CategoryNode, error) {
	roots, err := u.repo.FetchRoots(ctx)
	if err != nil {
		return nil, err
	}

	tree := make([]domain.CategoryNode, 0, len(roots))
	for _, root := range roots {
		children, err := u.repo.FetchChildren(ctx, root.ID)
		if err != nil {
			return nil, err
		}
		if children == nil {
			children = []domain.PostArea{}
		}
		tree = append(tree, domain.CategoryNode{PostArea: root, Subcategories: children})
	}
	return tree, nil
}
