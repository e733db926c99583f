package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (
			id, name, phone_number, city, state, email, timezone,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	clinic.ID = uuid.New()
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.PhoneNumber,
		clinic.City,
		clinic.State,
		clinic.Email,
		clinic.Timezone,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", mapError(err))
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, phone_number, city, state, email, timezone,
			   created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", mapError(err))
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, phone_number = $2, city = $3, state = $4,
			email = $5, timezone = $6, updated_at = $7
		WHERE id = $8
	`
	clinic.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.PhoneNumber,
		clinic.City,
		clinic.State,
		clinic.Email,
		clinic.Timezone,
		clinic.UpdatedAt,
		clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", mapError(err))
	}
	return requireRows(result, "clinic")
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", mapError(err))
	}
	return requireRows(result, "clinic")
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `
		SELECT id, name, phone_number, city, state, email, timezone,
			   created_at, updated_at
		FROM clinics
		ORDER BY name ASC
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}
