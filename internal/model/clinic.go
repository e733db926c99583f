package model

type Clinic struct {
	Base
	Name        string `db:"name" json:"name"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	City        string `db:"city" json:"city"`
	State       string `db:"state" json:"state"`
	Email       string `db:"email" json:"email"`
	// Timezone is the IANA zone name slot arithmetic is performed in.
	Timezone string `db:"timezone" json:"timezone"`
}

type CreateClinicRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number" binding:"required,max=15"`
	City        string `json:"city" binding:"required,max=100"`
	State       string `json:"state" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Timezone    string `json:"timezone"`
}

type UpdateClinicRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Timezone    *string `json:"timezone"`
}
