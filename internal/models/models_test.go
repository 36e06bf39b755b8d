package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementEqualComparesValueNumerically(t *testing.T) {
	now := time.Now()
	a := Measurement{ID: uuid.New(), SensorID: uuid.New(), Value: decimal.RequireFromString("12.5"), CreatedAt: now}
	b := a
	b.Value = decimal.RequireFromString("12.50")
	assert.True(t, a.Equal(b))

	b.Value = decimal.RequireFromString("12.51")
	assert.False(t, a.Equal(b))
}

func TestMeasurementJSONKeepsDecimalPrecision(t *testing.T) {
	m := Measurement{
		ID:       uuid.MustParse("0b5c4d8e-8f53-4a43-9c3e-2f4d1b6c7a10"),
		SensorID: uuid.MustParse("5e7f6b7e-10a4-4c1a-9b1b-9c4bda0c1d22"),
		Value:    decimal.RequireFromString("1013.250000000001"),
	}
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":"1013.250000000001"`)

	var decoded Measurement
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, m.Value.Equal(decoded.Value))
	assert.Equal(t, m.SensorID, decoded.SensorID)
}

func TestSensorTypeValid(t *testing.T) {
	assert.True(t, Temperature.Valid())
	assert.True(t, WindDirection.Valid())
	assert.False(t, SensorType("sonar").Valid())
}

func TestPaginationNormalize(t *testing.T) {
	assert.Equal(t, Pagination{Offset: 0, Limit: 50}, Pagination{Offset: -3, Limit: 0}.Normalize())
	assert.Equal(t, Pagination{Offset: 10, Limit: 50}, Pagination{Offset: 10, Limit: 500}.Normalize())
	assert.Equal(t, Pagination{Offset: 5, Limit: 20}, Pagination{Offset: 5, Limit: 20}.Normalize())
}
