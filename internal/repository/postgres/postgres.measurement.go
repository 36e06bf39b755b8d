// FilePath: internal/repository/postgres/postgres.measurement.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/repository"
)

const measurementColumns = `id, value, sensor_id, created_at`

type MeasurementRepo struct {
	PostgresBaseRepo
	sensors repository.SensorToucher
}

// NewMeasurementRepository creates a measurement repository that touches
// the owning sensor after every insert.
func NewMeasurementRepository(db database.DB, sensors repository.SensorToucher) *MeasurementRepo {
	return &MeasurementRepo{
		PostgresBaseRepo: PostgresBaseRepo{db: db},
		sensors:          sensors,
	}
}

// List returns every measurement in the order the store yields them
func (r *MeasurementRepo) List(ctx context.Context) ([]*models.Measurement, error) {
	measurements := []*models.Measurement{}
	query := `SELECT ` + measurementColumns + ` FROM measurements`

	if err := r.db.GetDB().SelectContext(ctx, &measurements, query); err != nil {
		return nil, newDatabaseError("failed to list measurements", err)
	}
	return measurements, nil
}

func (r *MeasurementRepo) Get(ctx context.Context, id uuid.UUID) (*models.Measurement, error) {
	measurement := &models.Measurement{}
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE id = $1`

	if err := r.db.GetDB().GetContext(ctx, measurement, query, id); err != nil {
		return nil, notFoundOr("measurement", "get", err)
	}
	return measurement, nil
}

// Create inserts a measurement and then touches its sensor. The two
// statements are not atomic: when the touch fails the committed measurement
// is returned together with the error.
func (r *MeasurementRepo) Create(ctx context.Context, sensorID uuid.UUID, value decimal.Decimal) (*models.Measurement, error) {
	measurement := &models.Measurement{}
	query := `
		INSERT INTO measurements (value, sensor_id)
		VALUES ($1, $2)
		RETURNING ` + measurementColumns

	if err := r.db.GetDB().GetContext(ctx, measurement, query, value, sensorID); err != nil {
		return nil, newDatabaseError("failed to create measurement", err)
	}

	if err := r.sensors.Touch(ctx, sensorID); err != nil {
		nuts.L.Warnf("[MeasurementRepo] Measurement %s stored but touching sensor %s failed: %v", measurement.ID, sensorID, err)
		return measurement, errors.NewDatabaseError("failed to touch sensor", err)
	}
	return measurement, nil
}

// Delete removes a measurement and reports how many rows matched
func (r *MeasurementRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM measurements WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return 0, newDatabaseError("failed to delete measurement", err)
	}
	return rowsAffected(result)
}

func (r *MeasurementRepo) ListBySensor(ctx context.Context, sensorID uuid.UUID) ([]*models.Measurement, error) {
	measurements := []*models.Measurement{}
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE sensor_id = $1 ORDER BY created_at DESC`

	if err := r.db.GetDB().SelectContext(ctx, &measurements, query, sensorID); err != nil {
		return nil, newDatabaseError("failed to list sensor measurements", err)
	}
	return measurements, nil
}

func (r *MeasurementRepo) LatestBySensor(ctx context.Context, sensorID uuid.UUID) (*models.Measurement, error) {
	measurement := &models.Measurement{}
	query := `
		SELECT ` + measurementColumns + `
		FROM measurements
		WHERE sensor_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	if err := r.db.GetDB().GetContext(ctx, measurement, query, sensorID); err != nil {
		return nil, notFoundOr("measurement", "get latest", err)
	}
	return measurement, nil
}

func (r *MeasurementRepo) DeleteBySensorID(ctx context.Context, sensorID uuid.UUID, tx database.Transaction) (int64, error) {
	query := `DELETE FROM measurements WHERE sensor_id = $1`

	result, err := r.execContext(ctx, tx, query, sensorID)
	if err != nil {
		return 0, newDatabaseError("failed to delete sensor measurements", err)
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return 0, err
	}
	nuts.L.Infof("[MeasurementRepo] Deleted %d measurements for sensor %s", rows, sensorID)
	return rows, nil
}
