package postgres

import (
	"context"
	"errors"

	"job-posting-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postAreaRepo struct {
	db *pgxpool.Pool
}

func NewPostAreaRepository(db *pgxpool.Pool) domain.PostAreaRepository {
	return &postAreaRepo{db: db}
}

func (r *postAreaRepo) FindByName(ctx context.Context, name string) (*domain.PostArea, error) {
	query := `
		SELECT a.id, a.name, a.parent_id, p.id, p.name, p.parent_id
		FROM post_areas a
		LEFT JOIN post_areas p ON p.id = a.parent_id
		WHERE a.name = $1`

	var (
		area                  domain.PostArea
		parentID, grandParent *uuid.UUID
		parentName            *string
	)
	err := r.db.QueryRow(ctx, query, name).Scan(&area.ID, &area.Name, &area.ParentID, &parentID, &parentName, &grandParent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	area.Parent = joinedArea(parentID, parentName, grandParent)
	return &area, nil
}

func (r *postAreaRepo) FetchRoots(ctx context.Context) ([]domain.PostArea, error) {
	return r.queryAreas(ctx, `SELECT id, name, parent_id FROM post_areas WHERE parent_id IS NULL ORDER BY name`)
}

func (r *postAreaRepo) FetchChildren(ctx context.Context, parentID uuid.UUID) ([]domain.PostArea, error) {
	return r.queryAreas(ctx, `SELECT id, name, parent_id FROM post_areas WHERE parent_id = $1 ORDER BY name`, parentID)
}

func (r *postAreaRepo) queryAreas(ctx context.Context, query string, args ...any) ([]domain.PostArea, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []domain.PostArea{}
	for rows.Next() {
		var a domain.PostArea
		if err := rows.Scan(&a.ID, &a.Name, &a.ParentID); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}
