package service

import (
	"context"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

// StationService handles station-related business logic
type StationService interface {
	CreateStation(ctx context.Context, station *models.Station) error
	GetStation(ctx context.Context, id uuid.UUID) (*models.Station, error)
	UpdateStation(ctx context.Context, station *models.Station) error
	DeleteStation(ctx context.Context, id uuid.UUID) error
	ListStations(ctx context.Context, offset, limit int) ([]*models.Station, error)
}

func validateStation(station *models.Station) error {
	station.Name = strings.TrimSpace(station.Name)
	if station.Name == "" {
		return errors.NewValidationError("station name is required", nil)
	}
	if station.Latitude < -90 || station.Latitude > 90 {
		return errors.NewValidationError("latitude out of range", nil)
	}
	if station.Longitude < -180 || station.Longitude > 180 {
		return errors.NewValidationError("longitude out of range", nil)
	}
	if station.Timezone == "" {
		station.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(station.Timezone); err != nil {
		return errors.NewValidationError("unknown timezone", err)
	}
	return nil
}

// CreateStation creates a new station with proper validation and initialization
func (s *Service) CreateStation(ctx context.Context, station *models.Station) error {
	if err := validateStation(station); err != nil {
		return err
	}
	if err := s.stations.Create(ctx, station); err != nil {
		return err
	}
	nuts.L.Infof("[StationService] Created station %s (%s)", station.Name, station.ID)
	return nil
}

func (s *Service) GetStation(ctx context.Context, id uuid.UUID) (*models.Station, error) {
	return s.stations.Get(ctx, id)
}

// UpdateStation overwrites the mutable fields of an existing station
func (s *Service) UpdateStation(ctx context.Context, station *models.Station) error {
	existing, err := s.stations.Get(ctx, station.ID)
	if err != nil {
		return err
	}
	if err := validateStation(station); err != nil {
		return err
	}

	station.CreatedAt = existing.CreatedAt
	station.UpdatedAt = time.Now().UTC()

	nuts.L.Infof("[StationService] Updating station %s", station.ID)
	return s.stations.Update(ctx, station)
}

// DeleteStation removes a station with all of its sensors and measurements
func (s *Service) DeleteStation(ctx context.Context, id uuid.UUID) error {
	return s.Cleanup.DeleteStation(ctx, id)
}

func (s *Service) ListStations(ctx context.Context, offset, limit int) ([]*models.Station, error) {
	page := models.Pagination{Offset: offset, Limit: limit}.Normalize()
	return s.stations.List(ctx, page.Offset, page.Limit)
}
