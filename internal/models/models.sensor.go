// FilePath: internal/models/models.sensor.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type SensorType string

const (
	Temperature   SensorType = "temperature"
	Humidity      SensorType = "humidity"
	Pressure      SensorType = "pressure"
	WindSpeed     SensorType = "wind_speed"
	WindDirection SensorType = "wind_direction"
	Rainfall      SensorType = "rainfall"
	Light         SensorType = "light"
	UVIndex       SensorType = "uv_index"
	Other         SensorType = "other"
)

var sensorTypes = map[SensorType]struct{}{
	Temperature: {}, Humidity: {}, Pressure: {}, WindSpeed: {}, WindDirection: {},
	Rainfall: {}, Light: {}, UVIndex: {}, Other: {},
}

// Valid reports whether t is one of the known sensor types
func (t SensorType) Valid() bool {
	_, ok := sensorTypes[t]
	return ok
}

type Sensor struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	StationID  uuid.UUID  `json:"station_id" db:"station_id"`
	Name       string     `json:"name" db:"name"`
	Type       SensorType `json:"type" db:"type"`
	Unit       string     `json:"unit" db:"unit"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty" db:"last_seen_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
