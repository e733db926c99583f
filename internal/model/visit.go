package model

import (
	"time"

	"github.com/google/uuid"
)

// Visit is the historical record of a completed appointment.
type Visit struct {
	Base
	PatientID      uuid.UUID   `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID   `db:"doctor_id" json:"doctor_id"`
	ClinicID       uuid.UUID   `db:"clinic_id" json:"clinic_id"`
	DateTime       time.Time   `db:"date_time" json:"date_time"`
	DoctorNotes    string      `db:"doctor_notes" json:"doctor_notes"`
	ProceduresDone []Specialty `db:"-" json:"procedures_done,omitempty"`
}

type CreateVisitRequest struct {
	PatientID    string   `json:"patient_id" binding:"required,uuid"`
	DoctorID     string   `json:"doctor_id" binding:"required,uuid"`
	ClinicID     string   `json:"clinic_id" binding:"required,uuid"`
	DateTime     string   `json:"date_time" binding:"required"`
	DoctorNotes  string   `json:"doctor_notes"`
	ProcedureIDs []string `json:"procedure_ids" binding:"omitempty,dive,uuid"`
}
