package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentDuration is the fixed slot length. An appointment stores
// only its start; it occupies [start, start+AppointmentDuration).
const AppointmentDuration = 15 * time.Minute

type Appointment struct {
	Base
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ClinicID    uuid.UUID `db:"clinic_id" json:"clinic_id"`
	ProcedureID uuid.UUID `db:"procedure_id" json:"procedure_id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	DateBooked  time.Time `db:"date_booked" json:"date_booked"`
}

// EndTime is the exclusive end of the occupied interval.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(AppointmentDuration)
}

type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id" binding:"required,uuid"`
	DoctorID    string `json:"doctor_id" binding:"required,uuid"`
	ClinicID    string `json:"clinic_id" binding:"required,uuid"`
	ProcedureID string `json:"procedure_id" binding:"required,uuid"`
	// StartTime uses the same "YYYY-MM-DD HH:MM:SS" layout the slot
	// endpoint emits, interpreted in the clinic's zone.
	StartTime string `json:"start_time" binding:"required"`
}
