package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	// The unique index on (doctor_id, clinic_id, start_time) is the
	// final arbiter for concurrent bookings of the same slot.
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, clinic_id, procedure_id,
			start_time, date_booked, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ClinicID,
		appointment.ProcedureID,
		appointment.StartTime,
		appointment.DateBooked,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", mapError(err))
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, procedure_id,
			   start_time, date_booked, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", mapError(err))
	}
	return &appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", mapError(err))
	}
	return requireRows(result, "appointment")
}

func (r *appointmentRepository) ListForDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, procedure_id,
			   start_time, date_booked, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		AND clinic_id = $2
		AND start_time >= $3
		AND start_time < $4
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, doctorID, clinicID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for day: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, after time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, procedure_id,
			   start_time, date_booked, created_at, updated_at
		FROM appointments
		WHERE patient_id = $1
		AND start_time >= $2
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, patientID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}
