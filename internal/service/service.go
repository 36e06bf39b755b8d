package service

import (
	"context"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/cleanup"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/repository"
)

const (
	EventMeasurementCreated = "measurement.created"
	EventMeasurementDeleted = "measurement.deleted"
)

// LatestCache stores the most recent measurement per sensor
type LatestCache interface {
	Set(ctx context.Context, m *models.Measurement) error
	Get(ctx context.Context, sensorID uuid.UUID) (*models.Measurement, error)
	Invalidate(ctx context.Context, sensorID uuid.UUID) error
	InvalidateIfMatches(ctx context.Context, sensorID, measurementID uuid.UUID) error
}

// Service contains all repositories and service-wide dependencies
type Service struct {
	measurements repository.MeasurementRepository
	sensors      repository.SensorRepository
	stations     repository.StationRepository
	cache        LatestCache
	events       *nuts.EventEmitter

	Cleanup *cleanup.CleanupService
}

// New creates a new service instance
func New(
	measurements repository.MeasurementRepository,
	sensors repository.SensorRepository,
	stations repository.StationRepository,
) *Service {
	svc := &Service{
		measurements: measurements,
		sensors:      sensors,
		stations:     stations,
		events:       nuts.NewEventEmitter(),
	}
	svc.Cleanup = cleanup.New(stations, sensors, measurements)
	if err := svc.Cleanup.OnCleanup(cleanup.EventSensorDeleted, svc.dropCachedSensor); err != nil {
		nuts.L.Errorf("[Service] Cache invalidation for deleted sensors disabled: %v", err)
	}
	return svc
}

// WithCache enables the latest-measurement cache
func (s *Service) WithCache(c LatestCache) *Service {
	s.cache = c
	return s
}

// Validate checks if all required repositories are initialized
func (s *Service) Validate() error {
	if s.measurements == nil {
		return ErrMissingRepository("measurements")
	}
	if s.sensors == nil {
		return ErrMissingRepository("sensors")
	}
	if s.stations == nil {
		return ErrMissingRepository("stations")
	}
	if s.Cleanup == nil {
		return errors.NewInternalError("missing cleanup service", nil)
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// OnMeasurement registers a listener for measurement events
func (s *Service) OnMeasurement(event string, handler func(m *models.Measurement)) error {
	if _, err := s.events.On(event, "measurement_handler_"+nuts.NID("h", 8), handler); err != nil {
		return errors.NewInternalError("failed to register "+event+" listener", err)
	}
	return nil
}

func (s *Service) emit(event string, m *models.Measurement) {
	if err := s.events.Emit(event, m); err != nil {
		nuts.L.Errorf("[Service] Failed to emit %s for measurement %s: %v", event, m.ID, err)
	}
}

func (s *Service) dropCachedSensor(id string) {
	if s.cache == nil {
		return
	}
	sensorID, err := uuid.Parse(id)
	if err != nil {
		return
	}
	if err := s.cache.Invalidate(context.Background(), sensorID); err != nil {
		nuts.L.Warnf("[Service] Failed to invalidate cache for sensor %s: %v", id, err)
	}
}

// ParseID parses a path or payload identifier into a UUID
func ParseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewValidationError("invalid "+kind+" id", err).
			WithDetails(map[string]interface{}{"value": raw})
	}
	return id, nil
}
