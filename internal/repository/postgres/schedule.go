package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

const affiliationColumns = `
	a.id, a.doctor_id, a.clinic_id, a.office_address,
	a.created_at, a.updated_at, c.timezone AS clinic_timezone
`

func (r *scheduleRepository) CreateAffiliation(ctx context.Context, aff *model.Affiliation) error {
	query := `
		INSERT INTO affiliations (
			id, doctor_id, clinic_id, office_address, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	aff.ID = uuid.New()
	aff.CreatedAt = time.Now()
	aff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		aff.ID,
		aff.DoctorID,
		aff.ClinicID,
		aff.OfficeAddress,
		aff.CreatedAt,
		aff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create affiliation: %w", mapError(err))
	}
	return nil
}

func (r *scheduleRepository) GetAffiliation(ctx context.Context, doctorID, clinicID uuid.UUID) (*model.Affiliation, error) {
	query := `
		SELECT ` + affiliationColumns + `
		FROM affiliations a
		JOIN clinics c ON c.id = a.clinic_id
		WHERE a.doctor_id = $1 AND a.clinic_id = $2
	`
	var aff model.Affiliation
	if err := r.db.GetContext(ctx, &aff, query, doctorID, clinicID); err != nil {
		return nil, fmt.Errorf("failed to get affiliation: %w", mapError(err))
	}
	return &aff, nil
}

func (r *scheduleRepository) GetAffiliationByID(ctx context.Context, id uuid.UUID) (*model.Affiliation, error) {
	query := `
		SELECT ` + affiliationColumns + `
		FROM affiliations a
		JOIN clinics c ON c.id = a.clinic_id
		WHERE a.id = $1
	`
	var aff model.Affiliation
	if err := r.db.GetContext(ctx, &aff, query, id); err != nil {
		return nil, fmt.Errorf("failed to get affiliation: %w", mapError(err))
	}
	return &aff, nil
}

func (r *scheduleRepository) ListAffiliations(ctx context.Context, doctorID uuid.UUID) ([]*model.Affiliation, error) {
	query := `
		SELECT ` + affiliationColumns + `
		FROM affiliations a
		JOIN clinics c ON c.id = a.clinic_id
		WHERE a.doctor_id = $1
		ORDER BY a.created_at ASC
	`
	var affs []*model.Affiliation
	if err := r.db.SelectContext(ctx, &affs, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list affiliations: %w", err)
	}
	return affs, nil
}

func (r *scheduleRepository) DeleteAffiliation(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM affiliations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete affiliation: %w", mapError(err))
	}
	return requireRows(result, "affiliation")
}

func (r *scheduleRepository) ReplaceWorkingIntervals(ctx context.Context, affiliationID uuid.UUID, intervals []model.WorkingInterval) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM working_intervals WHERE affiliation_id = $1`, affiliationID,
	); err != nil {
		return fmt.Errorf("failed to clear working intervals: %w", err)
	}

	query := `
		INSERT INTO working_intervals (
			id, affiliation_id, day_of_week, start_time, end_time
		) VALUES ($1, $2, $3, $4, $5)
	`
	for i := range intervals {
		intervals[i].ID = uuid.New()
		intervals[i].AffiliationID = affiliationID
		if _, err := tx.ExecContext(ctx, query,
			intervals[i].ID,
			intervals[i].AffiliationID,
			intervals[i].DayOfWeek,
			intervals[i].StartTime,
			intervals[i].EndTime,
		); err != nil {
			return fmt.Errorf("failed to insert working interval: %w", mapError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *scheduleRepository) ListWorkingIntervals(ctx context.Context, affiliationID uuid.UUID) ([]model.WorkingInterval, error) {
	query := `
		SELECT id, affiliation_id, day_of_week, start_time, end_time
		FROM working_intervals
		WHERE affiliation_id = $1
	`
	var intervals []model.WorkingInterval
	if err := r.db.SelectContext(ctx, &intervals, query, affiliationID); err != nil {
		return nil, fmt.Errorf("failed to list working intervals: %w", err)
	}
	return intervals, nil
}

func (r *scheduleRepository) GetWorkingInterval(ctx context.Context, affiliationID uuid.UUID, day model.Weekday) (*model.WorkingInterval, error) {
	// The schema allows one interval per weekday; ORDER BY keeps the
	// pick deterministic if that constraint is ever relaxed.
	query := `
		SELECT id, affiliation_id, day_of_week, start_time, end_time
		FROM working_intervals
		WHERE affiliation_id = $1 AND day_of_week = $2
		ORDER BY start_time ASC
		LIMIT 1
	`
	var interval model.WorkingInterval
	if err := r.db.GetContext(ctx, &interval, query, affiliationID, day); err != nil {
		return nil, fmt.Errorf("failed to get working interval: %w", mapError(err))
	}
	return &interval, nil
}
