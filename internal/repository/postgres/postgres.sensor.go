// FilePath: internal/repository/postgres/postgres.sensor.go
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

const sensorColumns = `id, station_id, name, type, unit, last_seen_at, created_at, updated_at`

type SensorRepo struct {
	PostgresBaseRepo
}

func NewSensorRepository(db database.DB) *SensorRepo {
	return &SensorRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

// Create inserts the sensor and refreshes it with the store-generated
// id and timestamps.
func (r *SensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	query := `
		INSERT INTO sensors (station_id, name, type, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + sensorColumns

	err := r.db.GetDB().GetContext(ctx, sensor, query, sensor.StationID, sensor.Name, sensor.Type, sensor.Unit)
	if err != nil {
		return newDatabaseError("failed to create sensor", err)
	}
	return nil
}

func (r *SensorRepo) Get(ctx context.Context, id uuid.UUID) (*models.Sensor, error) {
	sensor := &models.Sensor{}
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE id = $1`

	if err := r.db.GetDB().GetContext(ctx, sensor, query, id); err != nil {
		return nil, notFoundOr("sensor", "get", err)
	}
	return sensor, nil
}

func (r *SensorRepo) List(ctx context.Context, filters models.SensorFilters) ([]*models.Sensor, error) {
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE 1=1`

	args := []interface{}{}
	if filters.StationID != "" {
		args = append(args, filters.StationID)
		query += fmt.Sprintf(` AND station_id = $%d`, len(args))
	}
	if filters.Type != "" {
		args = append(args, filters.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	sensors := []*models.Sensor{}
	if err := r.db.GetDB().SelectContext(ctx, &sensors, query, args...); err != nil {
		return nil, newDatabaseError("failed to list sensors", err)
	}
	return sensors, nil
}

func (r *SensorRepo) ListByStation(ctx context.Context, stationID uuid.UUID, tx database.Transaction) ([]*models.Sensor, error) {
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE station_id = $1 ORDER BY created_at DESC`

	rows, err := r.queryxContext(ctx, tx, query, stationID)
	if err != nil {
		return nil, newDatabaseError("failed to list station sensors", err)
	}
	defer rows.Close()

	sensors := []*models.Sensor{}
	for rows.Next() {
		sensor := &models.Sensor{}
		if err := rows.StructScan(sensor); err != nil {
			return nil, newDatabaseError("failed to scan sensor", err)
		}
		sensors = append(sensors, sensor)
	}
	if err := rows.Err(); err != nil {
		return nil, newDatabaseError("failed to list station sensors", err)
	}
	return sensors, nil
}

// Touch records activity on the sensor by bumping last_seen_at
func (r *SensorRepo) Touch(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sensors SET
			last_seen_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return newDatabaseError("failed to touch sensor", err)
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NewNotFoundError("sensor not found", nil)
	}
	return nil
}

func (r *SensorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteWithTx(ctx, id, nil)
}

func (r *SensorRepo) DeleteWithTx(ctx context.Context, id uuid.UUID, tx database.Transaction) error {
	query := `DELETE FROM sensors WHERE id = $1`

	result, err := r.execContext(ctx, tx, query, id)
	if err != nil {
		return newDatabaseError("failed to delete sensor", err)
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NewNotFoundError("sensor not found", nil)
	}

	nuts.L.Infof("[SensorRepo] Deleted sensor %s", id)
	return nil
}
