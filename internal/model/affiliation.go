package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Affiliation links one doctor to one clinic and scopes both the weekly
// schedule and appointment conflicts.
type Affiliation struct {
	Base
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ClinicID      uuid.UUID `db:"clinic_id" json:"clinic_id"`
	OfficeAddress string    `db:"office_address" json:"office_address"`
	// ClinicTimezone is joined from the clinic row on reads.
	ClinicTimezone string `db:"clinic_timezone" json:"-"`
}

// WorkingInterval is one weekday's working hours for an affiliation.
// An affiliation holds at most one interval per weekday.
type WorkingInterval struct {
	ID            uuid.UUID `db:"id" json:"-"`
	AffiliationID uuid.UUID `db:"affiliation_id" json:"-"`
	DayOfWeek     Weekday   `db:"day_of_week" json:"day_of_week"`
	StartTime     TimeOfDay `db:"start_time" json:"start_time"`
	EndTime       TimeOfDay `db:"end_time" json:"end_time"`
}

func (w *WorkingInterval) Validate() error {
	if !w.DayOfWeek.Valid() {
		return fmt.Errorf("invalid day of week: %q", w.DayOfWeek)
	}
	if !w.StartTime.Before(w.EndTime) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

type CreateAffiliationRequest struct {
	DoctorID      string `json:"doctor_id" binding:"required,uuid"`
	ClinicID      string `json:"clinic_id" binding:"required,uuid"`
	OfficeAddress string `json:"office_address" binding:"required"`
}

// WorkingIntervalInput is one row of a schedule replacement payload.
type WorkingIntervalInput struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
