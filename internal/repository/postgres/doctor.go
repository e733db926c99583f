package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, npi, name, email, phone_number, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.NPI,
		doctor.Name,
		doctor.Email,
		doctor.PhoneNumber,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", mapError(err))
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, npi, name, email, phone_number, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", mapError(err))
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, email = $2, phone_number = $3, updated_at = $4
		WHERE id = $5
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.PhoneNumber,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", mapError(err))
	}
	return requireRows(result, "doctor")
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", mapError(err))
	}
	return requireRows(result, "doctor")
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, npi, name, email, phone_number, created_at, updated_at
		FROM doctors
		ORDER BY name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) SetSpecialties(ctx context.Context, doctorID uuid.UUID, specialtyIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM doctor_specialties WHERE doctor_id = $1`, doctorID,
	); err != nil {
		return fmt.Errorf("failed to clear doctor specialties: %w", err)
	}

	for _, specialtyID := range specialtyIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO doctor_specialties (doctor_id, specialty_id) VALUES ($1, $2)`,
			doctorID, specialtyID,
		); err != nil {
			return fmt.Errorf("failed to add doctor specialty: %w", mapError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *doctorRepository) ListSpecialties(ctx context.Context, doctorID uuid.UUID) ([]model.Specialty, error) {
	query := `
		SELECT s.id, s.name
		FROM specialties s
		JOIN doctor_specialties ds ON ds.specialty_id = s.id
		WHERE ds.doctor_id = $1
		ORDER BY s.name ASC
	`
	var specialties []model.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor specialties: %w", err)
	}
	return specialties, nil
}

func (r *doctorRepository) ListByClinicAndSpecialty(ctx context.Context, clinicID, specialtyID uuid.UUID) ([]model.DoctorRef, error) {
	query := `
		SELECT DISTINCT d.id, d.name
		FROM doctors d
		JOIN affiliations a ON a.doctor_id = d.id
		JOIN doctor_specialties ds ON ds.doctor_id = d.id
		WHERE a.clinic_id = $1
		AND ds.specialty_id = $2
		ORDER BY d.name ASC
	`
	var doctors []model.DoctorRef
	if err := r.db.SelectContext(ctx, &doctors, query, clinicID, specialtyID); err != nil {
		return nil, fmt.Errorf("failed to list doctors by clinic and specialty: %w", err)
	}
	return doctors, nil
}
