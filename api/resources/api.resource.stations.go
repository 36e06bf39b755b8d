// FilePath: api/resources/api.resource.stations.go
package resources

import (
	"net/http"

	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/service"
)

// StationHandlers encapsulates the station-related HTTP handlers
type StationHandlers struct {
	service service.StationService
}

// @Summary Create a new station
// @Description Create a new station with the provided details
// @Tags stations
// @Accept json
// @Produce json
// @Param station body models.Station true "Station details"
// @Success 201 {object} models.Station
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /stations [post]
// @Security BearerAuth
func (h *StationHandlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var station models.Station
	if err := decodeJSON(r, &station); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	if err := h.service.CreateStation(r.Context(), &station); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, station)
}

// @Summary Get a station by ID
// @Tags stations
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {object} models.Station
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [get]
func (h *StationHandlers) GetStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "station")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	station, err := h.service.GetStation(r.Context(), id)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, station)
}

// @Summary List stations
// @Description Get a paginated list of stations
// @Tags stations
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Station
// @Router /stations [get]
func (h *StationHandlers) ListStations(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var page models.Pagination
	if err := decodeQuery(r, &page); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	stations, err := h.service.ListStations(r.Context(), page.Offset, page.Limit)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, stations)
}

// @Summary Update a station
// @Description Update an existing station's details
// @Tags stations
// @Accept json
// @Produce json
// @Param id path string true "Station ID"
// @Param station body models.Station true "Updated station details"
// @Success 200 {object} models.Station
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [put]
// @Security BearerAuth
func (h *StationHandlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "station")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	var station models.Station
	if err := decodeJSON(r, &station); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	station.ID = id
	if err := h.service.UpdateStation(r.Context(), &station); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, station)
}

// @Summary Delete a station
// @Description Delete a station with all of its sensors and measurements
// @Tags stations
// @Param id path string true "Station ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [delete]
// @Security BearerAuth
func (h *StationHandlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := pathID(r, "station")
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	if err := h.service.DeleteStation(r.Context(), id); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
