package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	specialty.ID = uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO specialties (id, name) VALUES ($1, $2)`,
		specialty.ID, specialty.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create specialty: %w", mapError(err))
	}
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	var specialty model.Specialty
	err := r.db.GetContext(ctx, &specialty,
		`SELECT id, name FROM specialties WHERE id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get specialty: %w", mapError(err))
	}
	return &specialty, nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	var specialties []*model.Specialty
	err := r.db.SelectContext(ctx, &specialties,
		`SELECT id, name FROM specialties ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}
