package model

import "github.com/google/uuid"

// Specialty doubles as the procedure catalog: a doctor offers the
// procedures named by their specialties.
type Specialty struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type CreateSpecialtyRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}
