// FilePath: internal/models/models.measurement.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Measurement is a single sensor reading. ID and CreatedAt are assigned by
// the store on insert; SensorID must reference an existing sensor.
type Measurement struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Value     decimal.Decimal `json:"value" db:"value"`
	SensorID  uuid.UUID       `json:"sensor_id" db:"sensor_id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Equal compares two measurements field by field, treating values as numbers
func (m Measurement) Equal(other Measurement) bool {
	return m.ID == other.ID &&
		m.SensorID == other.SensorID &&
		m.Value.Equal(other.Value) &&
		m.CreatedAt.Equal(other.CreatedAt)
}

// NewMeasurement is the payload accepted when recording a reading. Value
// may be sent as a JSON number or as a quoted decimal string.
type NewMeasurement struct {
	SensorID string      `json:"sensor_id" schema:"sensor_id"`
	Value    json.Number `json:"value" schema:"value" swaggertype:"string" example:"12.5"`
}
