// FilePath: internal/repository/postgres/postgres.station.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

const stationColumns = `id, name, description, location, latitude, longitude, timezone, created_at, updated_at`

type StationRepo struct {
	PostgresBaseRepo
}

func NewStationRepository(db database.DB) *StationRepo {
	return &StationRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

func (r *StationRepo) Create(ctx context.Context, station *models.Station) error {
	query := `
		INSERT INTO stations (
			name, description, location, latitude, longitude, timezone
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING ` + stationColumns

	err := r.db.GetDB().GetContext(ctx, station, query,
		station.Name, station.Description, station.Location,
		station.Latitude, station.Longitude, station.Timezone,
	)
	if err != nil {
		return newDatabaseError("failed to create station", err)
	}
	return nil
}

func (r *StationRepo) Get(ctx context.Context, id uuid.UUID) (*models.Station, error) {
	station := &models.Station{}
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1`

	if err := r.db.GetDB().GetContext(ctx, station, query, id); err != nil {
		return nil, notFoundOr("station", "get", err)
	}
	return station, nil
}

func (r *StationRepo) Update(ctx context.Context, station *models.Station) error {
	query := `
		UPDATE stations SET
			name = :name,
			description = :description,
			location = :location,
			latitude = :latitude,
			longitude = :longitude,
			timezone = :timezone,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, station)
	if err != nil {
		return newDatabaseError("failed to update station", err)
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NewNotFoundError("station not found", nil)
	}
	return nil
}

func (r *StationRepo) List(ctx context.Context, offset, limit int) ([]*models.Station, error) {
	stations := []*models.Station{}
	query := `SELECT ` + stationColumns + ` FROM stations ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	if err := r.db.GetDB().SelectContext(ctx, &stations, query, limit, offset); err != nil {
		return nil, newDatabaseError("failed to list stations", err)
	}
	return stations, nil
}

func (r *StationRepo) DeleteWithTx(ctx context.Context, id uuid.UUID, tx database.Transaction) error {
	query := `DELETE FROM stations WHERE id = $1`

	result, err := r.execContext(ctx, tx, query, id)
	if err != nil {
		return newDatabaseError("failed to delete station", err)
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NewNotFoundError("station not found", nil)
	}
	return nil
}
