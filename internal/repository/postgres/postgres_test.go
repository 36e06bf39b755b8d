package postgres

import (
	"context"
	stderrors "errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
)

var measurementCols = []string{"id", "value", "sensor_id", "created_at"}

func newMockDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return database.Wrap(db, "postgres"), mock
}

type fakeToucher struct {
	mu      sync.Mutex
	touched []uuid.UUID
	err     error
}

func (f *fakeToucher) Touch(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return f.err
}

func TestMeasurementListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, value, sensor_id, created_at FROM measurements")).
		WillReturnRows(sqlmock.NewRows(measurementCols))

	measurements, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, measurements)
	assert.Empty(t, measurements)
}

func TestMeasurementListReturnsAllRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	sensorID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows(measurementCols).
		AddRow(uuid.NewString(), "12.5", sensorID.String(), now).
		AddRow(uuid.NewString(), "-3.25", sensorID.String(), now.Add(time.Second)).
		AddRow(uuid.NewString(), "1013.000000001", sensorID.String(), now.Add(2*time.Second))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, value, sensor_id, created_at FROM measurements")).
		WillReturnRows(rows)

	measurements, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, measurements, 3)
	assert.True(t, decimal.RequireFromString("1013.000000001").Equal(measurements[2].Value))
	for _, m := range measurements {
		assert.Equal(t, sensorID, m.SensorID)
	}
}

func TestMeasurementListStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	mock.ExpectQuery("SELECT (.+) FROM measurements").
		WillReturnError(stderrors.New("connection refused"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsDatabase(err))
}

func TestMeasurementGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	id, sensorID := uuid.New(), uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, value, sensor_id, created_at FROM measurements WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(measurementCols).AddRow(id.String(), "12.5", sensorID.String(), now))

	m, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, sensorID, m.SensorID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(m.Value))
	assert.True(t, now.Equal(m.CreatedAt))
}

func TestMeasurementGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM measurements WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(measurementCols))

	_, err := repo.Get(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMeasurementCreateTouchesSensor(t *testing.T) {
	db, mock := newMockDB(t)
	toucher := &fakeToucher{}
	repo := NewMeasurementRepository(db, toucher)

	id, sensorID := uuid.New(), uuid.New()
	value := decimal.RequireFromString("12.5")
	before := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO measurements (value, sensor_id) VALUES ($1, $2) RETURNING id, value, sensor_id, created_at")).
		WithArgs(value, sensorID).
		WillReturnRows(sqlmock.NewRows(measurementCols).AddRow(id.String(), "12.5", sensorID.String(), before.Add(time.Millisecond)))

	m, err := repo.Create(context.Background(), sensorID, value)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, sensorID, m.SensorID)
	assert.True(t, value.Equal(m.Value))
	assert.False(t, m.CreatedAt.Before(before))
	assert.Equal(t, []uuid.UUID{sensorID}, toucher.touched)
}

func TestMeasurementCreateUnknownSensor(t *testing.T) {
	db, mock := newMockDB(t)
	toucher := &fakeToucher{}
	repo := NewMeasurementRepository(db, toucher)

	sensorID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO measurements")).
		WithArgs(sqlmock.AnyArg(), sensorID).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "measurements_sensor_id_fkey"})

	m, err := repo.Create(context.Background(), sensorID, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, errors.IsDatabase(err))
	assert.Empty(t, toucher.touched)

	apiErr, ok := errors.As(err)
	require.True(t, ok)
	details, ok := apiErr.Details.(constraintDetails)
	require.True(t, ok)
	assert.Equal(t, "23503", details.Code)
	assert.Equal(t, "measurements_sensor_id_fkey", details.Constraint)
}

func TestMeasurementCreateTouchFailureKeepsRow(t *testing.T) {
	db, mock := newMockDB(t)
	toucher := &fakeToucher{err: errors.NewNotFoundError("sensor not found", nil)}
	repo := NewMeasurementRepository(db, toucher)

	id, sensorID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO measurements")).
		WillReturnRows(sqlmock.NewRows(measurementCols).AddRow(id.String(), "7", sensorID.String(), time.Now()))

	m, err := repo.Create(context.Background(), sensorID, decimal.NewFromInt(7))
	require.Error(t, err)
	assert.True(t, errors.IsDatabase(err))
	require.NotNil(t, m)
	assert.Equal(t, id, m.ID)
}

func TestMeasurementDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	existing, missing := uuid.New(), uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM measurements WHERE id = $1")).
		WithArgs(existing).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM measurements WHERE id = $1")).
		WithArgs(missing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := repo.Delete(context.Background(), existing)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.Delete(context.Background(), missing)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMeasurementDeleteStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	mock.ExpectExec("DELETE FROM measurements").
		WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection"})

	_, err := repo.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsDatabase(err))
	apiErr, _ := errors.As(err)
	assert.Equal(t, "57P01", apiErr.Details.(constraintDetails).Code)
}

func TestMeasurementLatestBySensor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	sensorID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM measurements WHERE sensor_id = $1 ORDER BY created_at DESC LIMIT 1")).
		WithArgs(sensorID).
		WillReturnRows(sqlmock.NewRows(measurementCols))

	_, err := repo.LatestBySensor(context.Background(), sensorID)
	assert.True(t, errors.IsNotFound(err))
}

func TestMeasurementDeleteBySensorIDInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db, &fakeToucher{})

	sensorID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM measurements WHERE sensor_id = $1")).
		WithArgs(sensorID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	count, err := repo.DeleteBySensorID(context.Background(), sensorID, tx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	require.NoError(t, tx.Commit())
}
