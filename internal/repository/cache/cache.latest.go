// FilePath: internal/repository/cache/cache.latest.go
package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/weatherstation/api-server/internal/config"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

// ErrCacheMiss is returned when no snapshot is stored for a sensor
var ErrCacheMiss = stderrors.New("cache miss")

const keyPrefix = "ws:sensor:latest:"

// LatestCache keeps the most recent measurement of every sensor in Redis
type LatestCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLatestCache(client *redis.Client, ttl time.Duration) *LatestCache {
	return &LatestCache{client: client, ttl: ttl}
}

// NewRedisClient dials Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}
	return client, nil
}

func key(sensorID uuid.UUID) string {
	return keyPrefix + sensorID.String()
}

// Snapshots are hashes holding the encoded measurement next to its id and
// creation time in microseconds, so the scripts below can compare and write
// in a single round trip.
var (
	setIfNewer = redis.NewScript(`
local at = redis.call('HGET', KEYS[1], 'at')
if at and tonumber(at) > tonumber(ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[1], 'at', ARGV[1], 'id', ARGV[2], 'data', ARGV[3])
if tonumber(ARGV[4]) > 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[4])
end
return 1
`)

	delIfMatches = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'id') == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)
)

// Set stores m unless a newer measurement is already cached for its sensor
func (c *LatestCache) Set(ctx context.Context, m *models.Measurement) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return errors.NewInternalError("failed to encode measurement", err)
	}

	err = setIfNewer.Run(ctx, c.client, []string{key(m.SensorID)},
		m.CreatedAt.UnixMicro(), m.ID.String(), payload, c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return errors.NewUnavailableError("failed to cache measurement", err)
	}
	return nil
}

func (c *LatestCache) Get(ctx context.Context, sensorID uuid.UUID) (*models.Measurement, error) {
	payload, err := c.client.HGet(ctx, key(sensorID), "data").Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, errors.NewUnavailableError("failed to read cached measurement", err)
	}

	m := &models.Measurement{}
	if err := json.Unmarshal(payload, m); err != nil {
		return nil, errors.NewInternalError("failed to decode cached measurement", err)
	}
	return m, nil
}

// Invalidate drops the snapshot of a sensor
func (c *LatestCache) Invalidate(ctx context.Context, sensorID uuid.UUID) error {
	if err := c.client.Del(ctx, key(sensorID)).Err(); err != nil {
		return errors.NewUnavailableError("failed to invalidate cached measurement", err)
	}
	return nil
}

// InvalidateIfMatches drops the snapshot of a sensor only when it holds the
// given measurement.
func (c *LatestCache) InvalidateIfMatches(ctx context.Context, sensorID, measurementID uuid.UUID) error {
	err := delIfMatches.Run(ctx, c.client, []string{key(sensorID)}, measurementID.String()).Err()
	if err != nil {
		return errors.NewUnavailableError("failed to invalidate cached measurement", err)
	}
	return nil
}
