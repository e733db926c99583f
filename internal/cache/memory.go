package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// MemorySlotCache is the default single-process backend.
type MemorySlotCache struct {
	c *gocache.Cache
}

func NewMemorySlotCache(ttl time.Duration) *MemorySlotCache {
	return &MemorySlotCache{
		c: gocache.New(ttl, 2*ttl),
	}
}

func (m *MemorySlotCache) GetSlots(_ context.Context, doctorID, clinicID uuid.UUID, date string) ([]time.Time, bool) {
	v, ok := m.c.Get(slotKey(doctorID, clinicID, date))
	if !ok {
		return nil, false
	}
	slots, ok := v.([]time.Time)
	return slots, ok
}

func (m *MemorySlotCache) SetSlots(_ context.Context, doctorID, clinicID uuid.UUID, date string, slots []time.Time) {
	m.c.SetDefault(slotKey(doctorID, clinicID, date), slots)
}

func (m *MemorySlotCache) InvalidateDay(_ context.Context, doctorID, clinicID uuid.UUID, date string) {
	m.c.Delete(slotKey(doctorID, clinicID, date))
}
