// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/errors"
	"github.com/weatherstation/api-server/internal/service"
)

// Services is everything the HTTP layer calls into
type Services interface {
	service.MeasurementService
	service.SensorService
	service.StationService
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Measurements *MeasurementHandlers
	Sensors      *SensorHandlers
	Stations     *StationHandlers
	HealthCheck  func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc Services) *Resources {
	return &Resources{
		Measurements: &MeasurementHandlers{service: svc},
		Sensors:      &SensorHandlers{service: svc},
		Stations:     &StationHandlers{service: svc},
		HealthCheck:  healthy,
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

func healthy(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeQuery fills dst from the URL query string
func decodeQuery(r *http.Request, dst interface{}) *errors.APIError {
	if err := decoder.Decode(dst, r.URL.Query()); err != nil {
		return errors.NewValidationError("invalid query parameters", err)
	}
	return nil
}

// decodeBody accepts JSON, or form-encoded bodies for flat payloads
func decodeBody(r *http.Request, dst interface{}) *errors.APIError {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return errors.NewValidationError("invalid form body", err)
		}
		if err := decoder.Decode(dst, r.PostForm); err != nil {
			return errors.NewValidationError("invalid form body", err)
		}
		return nil
	}

	return decodeJSON(r, dst)
}

func decodeJSON(r *http.Request, dst interface{}) *errors.APIError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("invalid request body", err)
	}
	return nil
}

func pathID(r *http.Request, kind string) (uuid.UUID, error) {
	return service.ParseID(kind, mux.Vars(r)["id"])
}

// respondWithError keeps the status of a typed error and hides anything else
// behind a 500.
func respondWithError(w http.ResponseWriter, err error, requestID string) {
	apiErr, ok := errors.As(err)
	if !ok {
		apiErr = errors.NewInternalError("internal server error", err)
	}
	apiErr.WithRequestID(requestID)

	if apiErr.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s", apiErr.Error())
	} else {
		nuts.L.Debugf("[API] %s", apiErr.Error())
	}
	respondWithJSON(w, apiErr.Code, apiErr)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
