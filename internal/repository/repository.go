// FilePath: internal/repository/repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/models"
)

// SensorToucher records activity on a sensor. It is the only part of the
// sensor repository the measurement repository depends on.
type SensorToucher interface {
	Touch(ctx context.Context, id uuid.UUID) error
}

// MeasurementRepository defines the interface for measurement data operations
type MeasurementRepository interface {
	List(ctx context.Context) ([]*models.Measurement, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Measurement, error)
	Create(ctx context.Context, sensorID uuid.UUID, value decimal.Decimal) (*models.Measurement, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListBySensor(ctx context.Context, sensorID uuid.UUID) ([]*models.Measurement, error)
	LatestBySensor(ctx context.Context, sensorID uuid.UUID) (*models.Measurement, error)
	DeleteBySensorID(ctx context.Context, sensorID uuid.UUID, tx database.Transaction) (int64, error)
}

// SensorRepository defines the interface for sensor data operations
type SensorRepository interface {
	database.Repository
	SensorToucher
	Create(ctx context.Context, sensor *models.Sensor) error
	Get(ctx context.Context, id uuid.UUID) (*models.Sensor, error)
	List(ctx context.Context, filters models.SensorFilters) ([]*models.Sensor, error)
	ListByStation(ctx context.Context, stationID uuid.UUID, tx database.Transaction) ([]*models.Sensor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWithTx(ctx context.Context, id uuid.UUID, tx database.Transaction) error
}

// StationRepository defines the interface for station data operations
type StationRepository interface {
	database.Repository
	Create(ctx context.Context, station *models.Station) error
	Get(ctx context.Context, id uuid.UUID) (*models.Station, error)
	Update(ctx context.Context, station *models.Station) error
	List(ctx context.Context, offset, limit int) ([]*models.Station, error)
	DeleteWithTx(ctx context.Context, id uuid.UUID, tx database.Transaction) error
}
