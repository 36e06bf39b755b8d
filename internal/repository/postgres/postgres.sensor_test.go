package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/models"
)

var sensorCols = []string{"id", "station_id", "name", "type", "unit", "last_seen_at", "created_at", "updated_at"}

func TestSensorCreateFillsGeneratedFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	id, stationID := uuid.New(), uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sensors (station_id, name, type, unit) VALUES ($1, $2, $3, $4) RETURNING")).
		WithArgs(stationID, "roof thermometer", "temperature", "°C").
		WillReturnRows(sqlmock.NewRows(sensorCols).
			AddRow(id.String(), stationID.String(), "roof thermometer", "temperature", "°C", nil, now, now))

	sensor := &models.Sensor{StationID: stationID, Name: "roof thermometer", Type: models.Temperature, Unit: "°C"}
	require.NoError(t, repo.Create(context.Background(), sensor))
	assert.Equal(t, id, sensor.ID)
	assert.Nil(t, sensor.LastSeenAt)
	assert.True(t, now.Equal(sensor.CreatedAt))
}

func TestSensorTouch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sensors SET last_seen_at = NOW(), updated_at = NOW() WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Touch(context.Background(), id))
}

func TestSensorTouchMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	mock.ExpectExec("UPDATE sensors SET last_seen_at").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Touch(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}

func TestSensorListNumbersPlaceholders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	stationID := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta("FROM sensors WHERE 1=1 AND station_id = $1 AND type = $2 ORDER BY created_at DESC")).
		WithArgs(stationID, "humidity").
		WillReturnRows(sqlmock.NewRows(sensorCols))

	sensors, err := repo.List(context.Background(), models.SensorFilters{StationID: stationID, Type: models.Humidity})
	require.NoError(t, err)
	assert.Empty(t, sensors)
}

func TestSensorListTypeOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM sensors WHERE 1=1 AND type = $1 ORDER BY")).
		WithArgs("rainfall").
		WillReturnRows(sqlmock.NewRows(sensorCols).
			AddRow(uuid.NewString(), uuid.NewString(), "gauge", "rainfall", "mm", now, now, now))

	sensors, err := repo.List(context.Background(), models.SensorFilters{Type: models.Rainfall})
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	require.NotNil(t, sensors[0].LastSeenAt)
}

func TestSensorGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sensors WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(sensorCols))

	_, err := repo.Get(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}

func TestSensorListByStationInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	stationID := uuid.New()
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM sensors WHERE station_id = $1")).
		WithArgs(stationID).
		WillReturnRows(sqlmock.NewRows(sensorCols).
			AddRow(uuid.NewString(), stationID.String(), "a", "temperature", "°C", nil, now, now).
			AddRow(uuid.NewString(), stationID.String(), "b", "pressure", "hPa", nil, now, now))
	mock.ExpectRollback()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	sensors, err := repo.ListByStation(context.Background(), stationID, tx)
	require.NoError(t, err)
	assert.Len(t, sensors, 2)
	require.NoError(t, tx.Rollback())
}

func TestSensorDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSensorRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sensors WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}
