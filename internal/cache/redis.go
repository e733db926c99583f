package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisSlotCache shares cached availability across API replicas.
// Backend errors are logged and treated as cache misses.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(url string, ttl time.Duration) (*RedisSlotCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSlotCache{client: client, ttl: ttl}, nil
}

func (r *RedisSlotCache) GetSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string) ([]time.Time, bool) {
	data, err := r.client.Get(ctx, slotKey(doctorID, clinicID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("slot cache read failed")
		}
		return nil, false
	}

	var slots []time.Time
	if err := json.Unmarshal(data, &slots); err != nil {
		log.Warn().Err(err).Msg("slot cache entry corrupt, dropping")
		r.client.Del(ctx, slotKey(doctorID, clinicID, date))
		return nil, false
	}
	return slots, true
}

func (r *RedisSlotCache) SetSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string, slots []time.Time) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, slotKey(doctorID, clinicID, date), data, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("slot cache write failed")
	}
}

func (r *RedisSlotCache) InvalidateDay(ctx context.Context, doctorID, clinicID uuid.UUID, date string) {
	if err := r.client.Del(ctx, slotKey(doctorID, clinicID, date)).Err(); err != nil {
		log.Warn().Err(err).Msg("slot cache invalidation failed")
	}
}

func (r *RedisSlotCache) Close() error {
	return r.client.Close()
}
