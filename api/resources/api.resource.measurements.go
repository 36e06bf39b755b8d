// FilePath: api/resources/api.resource.measurements.go
package resources

import (
	"net/http"

	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/service"
)

// MeasurementHandlers encapsulates the measurement-related HTTP handlers
type MeasurementHandlers struct {
	service service.MeasurementService
}

// @Summary Record a measurement
// @Description Store a reading for an existing sensor. Accepts JSON or form-encoded bodies.
// @Tags measurements
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param measurement body models.NewMeasurement true "Sensor id and decimal value"
// @Success 201 {object} models.Measurement
// @Failure 400 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /measurements [post]
// @Security BearerAuth
func (h *MeasurementHandlers) CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input models.NewMeasurement
	if err := decodeBody(r, &input); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	m, err := h.service.RecordMeasurement(r.Context(), input)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, m)
}

// @Summary Get a measurement by ID
// @Tags measurements
// @Produce json
// @Param id path string true "Measurement ID"
// @Success 200 {object} models.Measurement
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /measurements/{id} [get]
func (h *MeasurementHandlers) GetMeasurement(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "measurement")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	m, err := h.service.GetMeasurement(r.Context(), id)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}

// @Summary List measurements
// @Tags measurements
// @Produce json
// @Success 200 {array} models.Measurement
// @Router /measurements [get]
func (h *MeasurementHandlers) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	measurements, err := h.service.ListMeasurements(r.Context())
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, measurements)
}

// @Summary Delete a measurement
// @Description Returns the number of deleted records, 0 if the id is unknown
// @Tags measurements
// @Produce json
// @Param id path string true "Measurement ID"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} errors.APIError
// @Router /measurements/{id} [delete]
// @Security BearerAuth
func (h *MeasurementHandlers) DeleteMeasurement(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "measurement")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	count, err := h.service.DeleteMeasurement(r.Context(), id)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"deleted": count})
}
