package cleanup

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/repository/postgres"
)

var sensorCols = []string{"id", "station_id", "name", "type", "unit", "last_seen_at", "created_at", "updated_at"}

func newService(t *testing.T) (*CleanupService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		sqlDB.Close()
	})

	db := database.Wrap(sqlDB, "postgres")
	sensors := postgres.NewSensorRepository(db)
	svc := New(
		postgres.NewStationRepository(db),
		sensors,
		postgres.NewMeasurementRepository(db, sensors),
	)
	return svc, mock
}

func listen(t *testing.T, s *CleanupService, event string) <-chan string {
	t.Helper()
	ch := make(chan string, 16)
	require.NoError(t, s.OnCleanup(event, func(id string) { ch <- id }))
	return ch
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("event not emitted")
		return ""
	}
}

func TestDeleteSensorRemovesMeasurementsFirst(t *testing.T) {
	svc, mock := newService(t)
	deleted := listen(t, svc, EventSensorDeleted)
	sensorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM measurements WHERE sensor_id = $1")).
		WithArgs(sensorID).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sensors WHERE id = $1")).
		WithArgs(sensorID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteSensor(context.Background(), sensorID))
	assert.Equal(t, sensorID.String(), receive(t, deleted))
}

func TestDeleteSensorRollsBackWhenSensorMissing(t *testing.T) {
	svc, mock := newService(t)
	sensorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM measurements").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM sensors").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.DeleteSensor(context.Background(), sensorID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteStationCascades(t *testing.T) {
	svc, mock := newService(t)
	stationDeleted := listen(t, svc, EventStationDeleted)
	sensorDeleted := listen(t, svc, EventSensorDeleted)

	stationID, s1, s2 := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM sensors WHERE station_id = $1")).
		WithArgs(stationID).
		WillReturnRows(sqlmock.NewRows(sensorCols).
			AddRow(s1.String(), stationID.String(), "a", "temperature", "°C", nil, now, now).
			AddRow(s2.String(), stationID.String(), "b", "humidity", "%", nil, now, now))
	for _, id := range []uuid.UUID{s1, s2} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM measurements WHERE sensor_id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sensors WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stations WHERE id = $1")).
		WithArgs(stationID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteStation(context.Background(), stationID))
	assert.Equal(t, stationID.String(), receive(t, stationDeleted))
	assert.ElementsMatch(t, []string{s1.String(), s2.String()}, []string{receive(t, sensorDeleted), receive(t, sensorDeleted)})
}

func TestDeleteStationEmptyStillDeletesStation(t *testing.T) {
	svc, mock := newService(t)
	stationID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM sensors WHERE station_id").WillReturnRows(sqlmock.NewRows(sensorCols))
	mock.ExpectExec("DELETE FROM stations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.DeleteStation(context.Background(), stationID)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteSensorNotifiesEveryListener(t *testing.T) {
	svc, mock := newService(t)
	first := listen(t, svc, EventSensorDeleted)
	second := listen(t, svc, EventSensorDeleted)
	sensorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM measurements").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM sensors").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteSensor(context.Background(), sensorID))

	// listeners run before DeleteSensor returns
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, sensorID.String(), <-first)
	assert.Equal(t, sensorID.String(), <-second)
}

func TestFailedDeleteDoesNotNotify(t *testing.T) {
	svc, mock := newService(t)
	deleted := listen(t, svc, EventSensorDeleted)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM measurements").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM sensors").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	require.Error(t, svc.DeleteSensor(context.Background(), uuid.New()))
	assert.Empty(t, deleted)
}
