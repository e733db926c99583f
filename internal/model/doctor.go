package model

import "github.com/google/uuid"

type Doctor struct {
	Base
	NPI         string      `db:"npi" json:"npi"`
	Name        string      `db:"name" json:"name"`
	Email       string      `db:"email" json:"email"`
	PhoneNumber string      `db:"phone_number" json:"phone_number"`
	Specialties []Specialty `db:"-" json:"specialties,omitempty"`
}

// DoctorRef is the trimmed shape returned by the booking-form search.
type DoctorRef struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type CreateDoctorRequest struct {
	NPI          string   `json:"npi" binding:"required,len=10"`
	Name         string   `json:"name" binding:"required,max=100"`
	Email        string   `json:"email" binding:"required,email"`
	PhoneNumber  string   `json:"phone_number" binding:"required,max=15"`
	SpecialtyIDs []string `json:"specialty_ids" binding:"required,min=1,dive,uuid"`
}

type UpdateDoctorRequest struct {
	Name         *string  `json:"name"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	PhoneNumber  *string  `json:"phone_number"`
	SpecialtyIDs []string `json:"specialty_ids" binding:"omitempty,dive,uuid"`
}
