package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"github.com/weatherstation/api-server/api/middleware"
	"github.com/weatherstation/api-server/api/resources"
	_ "github.com/weatherstation/api-server/docs"
)

// Router is the versioned HTTP API
type Router struct {
	router     *mux.Router
	auth       *middleware.KeycloakMiddleware
	adminRoles []string
	resources  *resources.Resources
}

// Options configures the optional parts of the router. A nil Auth leaves
// mutating routes open, a nil Metrics disables the metrics endpoint.
// AdminRoles guard sensor and station deletion on top of Auth.
type Options struct {
	Auth        *middleware.KeycloakMiddleware
	AdminRoles  []string
	Metrics     http.Handler
	MetricsPath string
	Instrument  mux.MiddlewareFunc
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

func NewRouter(svc resources.Services, opts Options) *Router {
	r := &Router{
		router:     mux.NewRouter(),
		auth:       opts.Auth,
		adminRoles: opts.AdminRoles,
		resources:  resources.NewResources(svc),
	}
	if opts.HealthCheck != nil {
		r.resources.SetHealthCheck(opts.HealthCheck)
	}
	if opts.Instrument != nil {
		r.router.Use(opts.Instrument)
	}
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.router.Handle(path, opts.Metrics).Methods(http.MethodGet)
	}

	r.setupRoutes()
	return r
}

func (r *Router) protect(h http.HandlerFunc) http.Handler {
	if r.auth == nil {
		return h
	}
	return r.auth.Authenticate(h)
}

// protectAdmin is protect plus the admin role check for cascading deletes
func (r *Router) protectAdmin(h http.HandlerFunc) http.Handler {
	if r.auth == nil {
		return h
	}
	return r.auth.Authenticate(r.auth.RequireRoles(r.adminRoles)(h))
}

func (r *Router) setupRoutes() {
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/swagger.json", serveSwagger).Methods(http.MethodGet)

	// Measurements
	measurements := r.resources.Measurements
	api.HandleFunc("/measurements", measurements.ListMeasurements).Methods(http.MethodGet)
	api.Handle("/measurements", r.protect(measurements.CreateMeasurement)).Methods(http.MethodPost)
	api.HandleFunc("/measurements/{id}", measurements.GetMeasurement).Methods(http.MethodGet)
	api.Handle("/measurements/{id}", r.protect(measurements.DeleteMeasurement)).Methods(http.MethodDelete)

	// Sensors
	sensors := r.resources.Sensors
	api.HandleFunc("/sensors", sensors.ListSensors).Methods(http.MethodGet)
	api.Handle("/sensors", r.protect(sensors.CreateSensor)).Methods(http.MethodPost)
	api.HandleFunc("/sensors/{id}", sensors.GetSensor).Methods(http.MethodGet)
	api.Handle("/sensors/{id}", r.protectAdmin(sensors.DeleteSensor)).Methods(http.MethodDelete)
	api.HandleFunc("/sensors/{id}/measurements", sensors.GetSensorMeasurements).Methods(http.MethodGet)
	api.HandleFunc("/sensors/{id}/latest", sensors.GetLatestMeasurement).Methods(http.MethodGet)

	// Stations
	stations := r.resources.Stations
	api.HandleFunc("/stations", stations.ListStations).Methods(http.MethodGet)
	api.Handle("/stations", r.protect(stations.CreateStation)).Methods(http.MethodPost)
	api.HandleFunc("/stations/{id}", stations.GetStation).Methods(http.MethodGet)
	api.Handle("/stations/{id}", r.protect(stations.UpdateStation)).Methods(http.MethodPut)
	api.Handle("/stations/{id}", r.protectAdmin(stations.DeleteStation)).Methods(http.MethodDelete)
}

func serveSwagger(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
