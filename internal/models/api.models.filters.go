package models

// SensorFilters defines the available filter options for sensors
type SensorFilters struct {
	StationID string     `json:"station_id" schema:"station_id"`
	Type      SensorType `json:"type" schema:"type"`
}

// Pagination is decoded from offset/limit query parameters
type Pagination struct {
	Offset int `json:"offset" schema:"offset"`
	Limit  int `json:"limit" schema:"limit"`
}

// Normalize clamps limit into 1..100 (default 50) and offset to >= 0
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
