// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/api"
	"github.com/weatherstation/api-server/api/middleware"
	"github.com/weatherstation/api-server/internal/cleanup"
	"github.com/weatherstation/api-server/internal/config"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/events"
	"github.com/weatherstation/api-server/internal/models"
	"github.com/weatherstation/api-server/internal/monitoring"
	"github.com/weatherstation/api-server/internal/repository/cache"
	"github.com/weatherstation/api-server/internal/repository/postgres"
	"github.com/weatherstation/api-server/internal/service"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	redis      *redis.Client
	publisher  *events.Publisher
	service    *service.Service
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		srv:        srv,
		monitoring: monitoring.NewService(),
	}
}

// Start connects all backends and begins listening for requests
func (s *Server) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, s.config.Database)
	if err != nil {
		return err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return fmt.Errorf("error pinging database: %w", err)
	}

	if err := s.initialize(ctx, db); err != nil {
		s.close()
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return s.waitForShutdown(errCh)
}

// initialize wires repositories, optional backends and the HTTP handler
// around an open database.
func (s *Server) initialize(ctx context.Context, db database.DB) error {
	s.db = db

	sensors := postgres.NewSensorRepository(db)
	s.service = service.New(
		postgres.NewMeasurementRepository(db, sensors),
		sensors,
		postgres.NewStationRepository(db),
	)
	if err := s.service.Validate(); err != nil {
		return err
	}

	if s.config.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, s.config.Redis)
		if err != nil {
			return err
		}
		s.redis = client
		s.service.WithCache(cache.NewLatestCache(client, s.config.Redis.LatestTTL))
		nuts.L.Infof("[Server] Latest-measurement cache enabled at %s", s.config.Redis.Addr())
	}

	if s.config.Kafka.Enabled() {
		s.publisher = events.NewPublisher(events.NewKafkaWriter(s.config.Kafka))
		if err := s.service.OnMeasurement(service.EventMeasurementCreated, s.publisher.Handler(events.MeasurementCreated)); err != nil {
			return err
		}
		if err := s.service.OnMeasurement(service.EventMeasurementDeleted, s.publisher.Handler(events.MeasurementDeleted)); err != nil {
			return err
		}
		nuts.L.Infof("[Server] Publishing measurement events to %s", s.config.Kafka.Topic)
	}

	if err := s.setupEventHandlers(); err != nil {
		return err
	}
	s.srv.Handler = s.buildHandler()
	return nil
}

func (s *Server) buildHandler() http.Handler {
	opts := api.Options{
		Metrics:     s.monitoring.Handler(),
		MetricsPath: s.config.Monitoring.MetricsPath,
		Instrument:  s.monitoring.Middleware,
		HealthCheck: s.handleHealth(),
	}
	if s.config.Keycloak.Enabled() {
		opts.Auth = middleware.NewKeycloakMiddleware(s.config.Keycloak)
		opts.AdminRoles = s.config.Keycloak.AdminRoles()
		nuts.L.Infof("[Server] Keycloak authentication enabled for realm %s", s.config.Keycloak.Realm)
	}

	var h http.Handler = api.NewRouter(s.service, opts)
	h = handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return handlers.CombinedLoggingHandler(os.Stdout, h)
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		s.close()
		return fmt.Errorf("error starting server: %w", err)
	}

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	s.close()

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing kafka writer: %v", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis client: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}
}

// handleHealth reports the version and whether the database answers
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			nuts.L.Warnf("[Server] Health check failed: %v", err)
			status, code = "degraded", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupEventHandlers() error {
	if err := s.service.Cleanup.OnCleanup(cleanup.EventStationDeleted, func(id string) {
		nuts.L.Infof("[Cleanup] Station %s and all associated data deleted", id)
		s.monitoring.RecordEvent(cleanup.EventStationDeleted, map[string]string{"station_id": id})
	}); err != nil {
		return err
	}

	if err := s.service.Cleanup.OnCleanup(cleanup.EventSensorDeleted, func(id string) {
		nuts.L.Infof("[Cleanup] Sensor %s and all associated data deleted", id)
		s.monitoring.RecordEvent(cleanup.EventSensorDeleted, map[string]string{"sensor_id": id})
	}); err != nil {
		return err
	}

	for _, event := range []string{service.EventMeasurementCreated, service.EventMeasurementDeleted} {
		event := event
		if err := s.service.OnMeasurement(event, func(m *models.Measurement) {
			s.monitoring.RecordEvent(event, map[string]string{"sensor_id": m.SensorID.String()})
		}); err != nil {
			return err
		}
	}
	return nil
}
