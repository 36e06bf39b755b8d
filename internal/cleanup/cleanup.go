package cleanup

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/repository"
)

const (
	EventSensorDeleted  = "sensor.deleted"
	EventStationDeleted = "station.deleted"
)

// CleanupService coordinates deletion of hierarchical data
type CleanupService struct {
	stations     repository.StationRepository
	sensors      repository.SensorRepository
	measurements repository.MeasurementRepository
	events       *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	stations repository.StationRepository,
	sensors repository.SensorRepository,
	measurements repository.MeasurementRepository,
) *CleanupService {
	return &CleanupService{
		stations:     stations,
		sensors:      sensors,
		measurements: measurements,
		events:       nuts.NewEventEmitter(),
	}
}

// DeleteStation deletes a station, its sensors and all their measurements
// in one transaction.
func (s *CleanupService) DeleteStation(ctx context.Context, stationID uuid.UUID) error {
	tx, err := s.stations.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	sensors, err := s.sensors.ListByStation(ctx, stationID, tx)
	if err != nil {
		return fmt.Errorf("failed to list sensors: %w", err)
	}

	for _, sensor := range sensors {
		if err := s.deleteSensor(ctx, sensor.ID, tx); err != nil {
			return err
		}
	}

	if err := s.stations.DeleteWithTx(ctx, stationID, tx); err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, sensor := range sensors {
		s.emit(EventSensorDeleted, sensor.ID.String())
	}
	s.emit(EventStationDeleted, stationID.String())
	return nil
}

// DeleteSensor deletes a sensor and all its measurements
func (s *CleanupService) DeleteSensor(ctx context.Context, sensorID uuid.UUID) error {
	tx, err := s.sensors.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteSensor(ctx, sensorID, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.emit(EventSensorDeleted, sensorID.String())
	return nil
}

func (s *CleanupService) deleteSensor(ctx context.Context, sensorID uuid.UUID, tx database.Transaction) error {
	count, err := s.measurements.DeleteBySensorID(ctx, sensorID, tx)
	if err != nil {
		return fmt.Errorf("failed to delete measurements: %w", err)
	}
	if err := s.sensors.DeleteWithTx(ctx, sensorID, tx); err != nil {
		return fmt.Errorf("failed to delete sensor: %w", err)
	}
	nuts.L.Infof("[Cleanup] Sensor %s removed with %d measurements", sensorID, count)
	return nil
}

func (s *CleanupService) emit(event, id string) {
	if err := s.events.Emit(event, id); err != nil {
		nuts.L.Errorf("[Cleanup] Failed to emit %s for %s: %v", event, id, err)
	}
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) error {
	if _, err := s.events.On(event, "cleanup_handler_"+nuts.NID("h", 8), handler); err != nil {
		return fmt.Errorf("failed to register %s listener: %w", event, err)
	}
	return nil
}
