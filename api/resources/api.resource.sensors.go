// FilePath: api/resources/api.resource.sensors.go
package resources

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/service"
)

type sensorService interface {
	service.SensorService
	ListSensorMeasurements(ctx context.Context, sensorID uuid.UUID) ([]*models.Measurement, error)
	LatestMeasurement(ctx context.Context, sensorID uuid.UUID) (*models.SensorSnapshot, error)
}

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	service sensorService
}

// @Summary Create a new sensor
// @Description Register a sensor on an existing station
// @Tags sensors
// @Accept json
// @Produce json
// @Param sensor body models.Sensor true "Sensor details"
// @Success 201 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sensors [post]
// @Security BearerAuth
func (h *SensorHandlers) CreateSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var sensor models.Sensor
	if err := decodeJSON(r, &sensor); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	if err := h.service.CreateSensor(r.Context(), &sensor); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, sensor)
}

// @Summary Get a sensor by ID
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [get]
func (h *SensorHandlers) GetSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "sensor")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	sensor, err := h.service.GetSensor(r.Context(), id)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary List sensors
// @Tags sensors
// @Produce json
// @Param station_id query string false "Filter by station"
// @Param type query string false "Filter by sensor type"
// @Success 200 {array} models.Sensor
// @Failure 400 {object} errors.APIError
// @Router /sensors [get]
func (h *SensorHandlers) ListSensors(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.SensorFilters
	if err := decodeQuery(r, &filters); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	sensors, err := h.service.ListSensors(r.Context(), filters)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, sensors)
}

// @Summary Delete a sensor
// @Description Delete a sensor and all of its measurements
// @Tags sensors
// @Param id path string true "Sensor ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [delete]
// @Security BearerAuth
func (h *SensorHandlers) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "sensor")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	if err := h.service.DeleteSensor(r.Context(), id); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List measurements of a sensor
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {array} models.Measurement
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/measurements [get]
func (h *SensorHandlers) GetSensorMeasurements(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "sensor")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	measurements, err := h.service.ListSensorMeasurements(r.Context(), id)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, measurements)
}

// @Summary Latest measurement of a sensor
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} models.SensorSnapshot
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/latest [get]
func (h *SensorHandlers) GetLatestMeasurement(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "sensor")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	snapshot, err := h.service.LatestMeasurement(r.Context(), id)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}
