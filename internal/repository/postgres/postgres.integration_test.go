//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testcontainers "github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

func startPostgres(t *testing.T) database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgrescontainer.WithDatabase("weather_station"),
		postgrescontainer.WithUsername("postgres"),
		postgrescontainer.WithPassword("postgres"),
		postgrescontainer.WithInitScripts(filepath.Join("testdata", "schema.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.Wrap(sqlDB, "pgx")
	require.NoError(t, db.Ping(ctx))
	return db
}

func TestMeasurementLifecycleAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	stations := NewStationRepository(db)
	sensors := NewSensorRepository(db)
	measurements := NewMeasurementRepository(db, sensors)

	all, err := measurements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	station := &models.Station{Name: "Rooftop", Timezone: "UTC"}
	require.NoError(t, stations.Create(ctx, station))
	sensor := &models.Sensor{StationID: station.ID, Name: "t1", Type: models.Temperature, Unit: "°C"}
	require.NoError(t, sensors.Create(ctx, sensor))
	assert.Nil(t, sensor.LastSeenAt)

	before := time.Now().Add(-time.Second)
	created, err := measurements.Create(ctx, sensor.ID, decimal.RequireFromString("12.5"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, sensor.ID, created.SensorID)
	assert.True(t, created.Value.Equal(decimal.RequireFromString("12.5")))
	assert.False(t, created.CreatedAt.Before(before))

	touched, err := sensors.Get(ctx, sensor.ID)
	require.NoError(t, err)
	require.NotNil(t, touched.LastSeenAt)

	fetched, err := measurements.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, created.Equal(*fetched))

	latest, err := measurements.LatestBySensor(ctx, sensor.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, latest.ID)

	n, err := measurements.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = measurements.Get(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	n, err = measurements.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCreateForUnknownSensorAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	measurements := NewMeasurementRepository(db, NewSensorRepository(db))

	_, err := measurements.Create(ctx, uuid.New(), decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, errors.IsDatabase(err))

	apiErr, ok := errors.As(err)
	require.True(t, ok)
	details, ok := apiErr.Details.(constraintDetails)
	require.True(t, ok)
	assert.Equal(t, "23503", details.Code)

	all, err := measurements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListReturnsEveryMeasurementAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	stations := NewStationRepository(db)
	sensors := NewSensorRepository(db)
	measurements := NewMeasurementRepository(db, sensors)

	station := &models.Station{Name: "Field", Timezone: "UTC"}
	require.NoError(t, stations.Create(ctx, station))
	sensor := &models.Sensor{StationID: station.ID, Name: "rain", Type: models.Rainfall, Unit: "mm"}
	require.NoError(t, sensors.Create(ctx, sensor))

	const n = 5
	for i := 0; i < n; i++ {
		_, err := measurements.Create(ctx, sensor.ID, decimal.NewFromInt(int64(i)))
		require.NoError(t, err)
	}

	all, err := measurements.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)

	bySensor, err := measurements.ListBySensor(ctx, sensor.ID)
	require.NoError(t, err)
	assert.Len(t, bySensor, n)
}
