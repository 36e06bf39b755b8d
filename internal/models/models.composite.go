// FilePath: internal/models/models.composite.go
package models

import "time"

// SensorSnapshot combines a sensor with its most recent measurement
type SensorSnapshot struct {
	Sensor    *Sensor      `json:"sensor"`
	Latest    *Measurement `json:"latest,omitempty"`
	FromCache bool         `json:"from_cache"`
	UpdatedAt time.Time    `json:"updated_at"`
}
