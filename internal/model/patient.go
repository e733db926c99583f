package model

import "time"

type Patient struct {
	Base
	Name        string    `db:"name" json:"name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Last4SSN    string    `db:"last_4_ssn" json:"last_4_ssn"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Gender      string    `db:"gender" json:"gender"`
	Address     string    `db:"address" json:"address"`
}

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Last4SSN    string `json:"last_4_ssn" binding:"required,len=4,numeric"`
	PhoneNumber string `json:"phone_number" binding:"required,max=15"`
	Gender      string `json:"gender" binding:"required,max=10"`
	Address     string `json:"address" binding:"required"`
}

type UpdatePatientRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Last4SSN    *string `json:"last_4_ssn" binding:"omitempty,len=4,numeric"`
	PhoneNumber *string `json:"phone_number"`
	Gender      *string `json:"gender"`
	Address     *string `json:"address"`
}
