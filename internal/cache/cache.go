package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlotCache stores computed availability keyed by one affiliation-day.
// It is a transparent optimization: a miss (or any backend failure)
// just means the engine recomputes.
type SlotCache interface {
	GetSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string) ([]time.Time, bool)
	SetSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string, slots []time.Time)
	// InvalidateDay drops the cached result after a booking mutation
	// touches that affiliation-day.
	InvalidateDay(ctx context.Context, doctorID, clinicID uuid.UUID, date string)
}

func slotKey(doctorID, clinicID uuid.UUID, date string) string {
	return fmt.Sprintf("slots:%s:%s:%s", doctorID, clinicID, date)
}
