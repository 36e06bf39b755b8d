package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/repository/cache"
)

// MeasurementService handles measurement-related business logic
type MeasurementService interface {
	RecordMeasurement(ctx context.Context, input models.NewMeasurement) (*models.Measurement, error)
	GetMeasurement(ctx context.Context, id uuid.UUID) (*models.Measurement, error)
	ListMeasurements(ctx context.Context) ([]*models.Measurement, error)
	ListSensorMeasurements(ctx context.Context, sensorID uuid.UUID) ([]*models.Measurement, error)
	DeleteMeasurement(ctx context.Context, id uuid.UUID) (int64, error)
	LatestMeasurement(ctx context.Context, sensorID uuid.UUID) (*models.SensorSnapshot, error)
}

// RecordMeasurement stores a reading for an existing sensor. A record
// returned alongside an error has been persisted but the sensor was not
// touched.
func (s *Service) RecordMeasurement(ctx context.Context, input models.NewMeasurement) (*models.Measurement, error) {
	sensorID, err := ParseID("sensor", input.SensorID)
	if err != nil {
		return nil, err
	}
	if input.Value == "" {
		return nil, errors.NewValidationError("value is required", nil)
	}
	value, err := decimal.NewFromString(input.Value.String())
	if err != nil {
		return nil, errors.NewValidationError("value must be a decimal number", err).
			WithDetails(map[string]interface{}{"value": input.Value})
	}

	m, err := s.measurements.Create(ctx, sensorID, value)
	if m == nil {
		return nil, err
	}

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, m); cerr != nil {
			nuts.L.Warnf("[MeasurementService] Failed to cache measurement %s: %v", m.ID, cerr)
		}
	}
	s.emit(EventMeasurementCreated, m)
	return m, err
}

func (s *Service) GetMeasurement(ctx context.Context, id uuid.UUID) (*models.Measurement, error) {
	return s.measurements.Get(ctx, id)
}

func (s *Service) ListMeasurements(ctx context.Context) ([]*models.Measurement, error) {
	return s.measurements.List(ctx)
}

func (s *Service) ListSensorMeasurements(ctx context.Context, sensorID uuid.UUID) ([]*models.Measurement, error) {
	if _, err := s.sensors.Get(ctx, sensorID); err != nil {
		return nil, err
	}
	return s.measurements.ListBySensor(ctx, sensorID)
}

// DeleteMeasurement returns the number of removed records, 0 when id is unknown
func (s *Service) DeleteMeasurement(ctx context.Context, id uuid.UUID) (int64, error) {
	existing, err := s.measurements.Get(ctx, id)
	if err != nil && !errors.IsNotFound(err) {
		return 0, err
	}

	count, err := s.measurements.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if count == 0 || existing == nil {
		return count, nil
	}

	if s.cache != nil {
		if cerr := s.cache.InvalidateIfMatches(ctx, existing.SensorID, existing.ID); cerr != nil {
			nuts.L.Warnf("[MeasurementService] Failed to invalidate cache for sensor %s: %v", existing.SensorID, cerr)
		}
	}
	s.emit(EventMeasurementDeleted, existing)
	return count, nil
}

// LatestMeasurement reads through the cache to the most recent stored reading
func (s *Service) LatestMeasurement(ctx context.Context, sensorID uuid.UUID) (*models.SensorSnapshot, error) {
	sensor, err := s.sensors.Get(ctx, sensorID)
	if err != nil {
		return nil, err
	}
	snapshot := &models.SensorSnapshot{Sensor: sensor}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sensorID)
		switch {
		case err == nil:
			snapshot.Latest = cached
			snapshot.FromCache = true
			snapshot.UpdatedAt = cached.CreatedAt
			return snapshot, nil
		case !stderrors.Is(err, cache.ErrCacheMiss):
			nuts.L.Warnf("[MeasurementService] Cache read failed for sensor %s: %v", sensorID, err)
		}
	}

	latest, err := s.measurements.LatestBySensor(ctx, sensorID)
	if err != nil {
		if errors.IsNotFound(err) {
			return snapshot, nil
		}
		return nil, err
	}
	snapshot.Latest = latest
	snapshot.UpdatedAt = latest.CreatedAt

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, latest); cerr != nil {
			nuts.L.Warnf("[MeasurementService] Failed to cache measurement %s: %v", latest.ID, cerr)
		}
	}
	return snapshot, nil
}
