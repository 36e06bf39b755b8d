package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

// SensorService handles sensor-related business logic
type SensorService interface {
	CreateSensor(ctx context.Context, sensor *models.Sensor) error
	GetSensor(ctx context.Context, id uuid.UUID) (*models.Sensor, error)
	ListSensors(ctx context.Context, filters models.SensorFilters) ([]*models.Sensor, error)
	DeleteSensor(ctx context.Context, id uuid.UUID) error
}

// CreateSensor registers a sensor on an existing station
func (s *Service) CreateSensor(ctx context.Context, sensor *models.Sensor) error {
	sensor.Name = strings.TrimSpace(sensor.Name)
	if sensor.Name == "" {
		return errors.NewValidationError("sensor name is required", nil)
	}
	if sensor.Type == "" {
		sensor.Type = models.Other
	}
	if !sensor.Type.Valid() {
		return errors.NewValidationError("unknown sensor type", nil).
			WithDetails(map[string]interface{}{"type": sensor.Type})
	}
	if sensor.StationID == uuid.Nil {
		return errors.NewValidationError("station_id is required", nil)
	}
	if _, err := s.stations.Get(ctx, sensor.StationID); err != nil {
		return err
	}

	if err := s.sensors.Create(ctx, sensor); err != nil {
		return err
	}
	nuts.L.Infof("[SensorService] Created sensor %s (%s) on station %s", sensor.Name, sensor.ID, sensor.StationID)
	return nil
}

func (s *Service) GetSensor(ctx context.Context, id uuid.UUID) (*models.Sensor, error) {
	return s.sensors.Get(ctx, id)
}

func (s *Service) ListSensors(ctx context.Context, filters models.SensorFilters) ([]*models.Sensor, error) {
	if filters.StationID != "" {
		if _, err := ParseID("station", filters.StationID); err != nil {
			return nil, err
		}
	}
	if filters.Type != "" && !filters.Type.Valid() {
		return nil, errors.NewValidationError("unknown sensor type", nil).
			WithDetails(map[string]interface{}{"type": filters.Type})
	}
	return s.sensors.List(ctx, filters)
}

// DeleteSensor removes a sensor together with its measurements
func (s *Service) DeleteSensor(ctx context.Context, id uuid.UUID) error {
	if err := s.Cleanup.DeleteSensor(ctx, id); err != nil {
		return err
	}
	s.dropCachedSensor(id.String())
	return nil
}
