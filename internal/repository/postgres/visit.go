package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO visits (
			id, patient_id, doctor_id, clinic_id, date_time,
			doctor_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	visit.ID = uuid.New()
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()

	if _, err := tx.ExecContext(ctx, query,
		visit.ID,
		visit.PatientID,
		visit.DoctorID,
		visit.ClinicID,
		visit.DateTime,
		visit.DoctorNotes,
		visit.CreatedAt,
		visit.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create visit: %w", mapError(err))
	}

	for _, procedure := range visit.ProceduresDone {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO visit_procedures (visit_id, specialty_id) VALUES ($1, $2)`,
			visit.ID, procedure.ID,
		); err != nil {
			return fmt.Errorf("failed to add visit procedure: %w", mapError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *visitRepository) Get(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, date_time,
			   doctor_notes, created_at, updated_at
		FROM visits
		WHERE id = $1
	`
	var visit model.Visit
	if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", mapError(err))
	}

	procedures, err := r.listProcedures(ctx, visit.ID)
	if err != nil {
		return nil, err
	}
	visit.ProceduresDone = procedures
	return &visit, nil
}

func (r *visitRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, before time.Time) ([]*model.Visit, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, date_time,
			   doctor_notes, created_at, updated_at
		FROM visits
		WHERE patient_id = $1
		AND date_time < $2
		ORDER BY date_time DESC
	`
	var visits []*model.Visit
	if err := r.db.SelectContext(ctx, &visits, query, patientID, before); err != nil {
		return nil, fmt.Errorf("failed to list patient visits: %w", err)
	}

	for _, visit := range visits {
		procedures, err := r.listProcedures(ctx, visit.ID)
		if err != nil {
			return nil, err
		}
		visit.ProceduresDone = procedures
	}
	return visits, nil
}

func (r *visitRepository) listProcedures(ctx context.Context, visitID uuid.UUID) ([]model.Specialty, error) {
	query := `
		SELECT s.id, s.name
		FROM specialties s
		JOIN visit_procedures vp ON vp.specialty_id = s.id
		WHERE vp.visit_id = $1
		ORDER BY s.name ASC
	`
	var procedures []model.Specialty
	if err := r.db.SelectContext(ctx, &procedures, query, visitID); err != nil {
		return nil, fmt.Errorf("failed to list visit procedures: %w", err)
	}
	return procedures, nil
}
