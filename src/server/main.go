package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"communication-service/src/config"
	"communication-service/src/db"
	"communication-service/src/rabbitmq"
	"communication-service/src/repository"
	"communication-service/src/rooms"
	"communication-service/src/router"
	"communication-service/src/service"
	"communication-service/src/sweeper"
)

// Server represents the HTTP server and its long-lived components.
type Server struct {
	config          *config.GlobalConfig
	database        *db.DB
	publisher       *rabbitmq.AMQPPublisher
	sweeper         *sweeper.Sweeper
	http            *http.Server
	shutdownHandler ShutdownHandlerInterface
}

// NewServer creates a new server instance
func NewServer(cfg *config.GlobalConfig) (*Server, error) {
	// Initialize database connection
	database, err := db.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// The broker is optional: lifecycle events are best-effort and the
	// state machine never depends on them.
	publisher, err := rabbitmq.NewAMQPPublisher(cfg.AMQPURL())
	if err != nil {
		slog.Warn("RabbitMQ unavailable, session events disabled", "error", err.Error())
		publisher = nil
	}

	sessionRepo := repository.NewSessionRepository(database)
	caseRepo := repository.NewCaseRepository(database)
	recordingRepo := repository.NewRecordingRepository(database)
	visitorRepo := repository.NewVisitorRepository(database)
	roomClient := rooms.NewClient(cfg.RoomProviderURL, cfg.RoomProviderKey)

	var pub rabbitmq.Publisher
	if publisher != nil {
		pub = publisher
	}
	sessionService := service.NewSessionService(sessionRepo, caseRepo, recordingRepo, roomClient, pub, cfg.StaleSessionThreshold)
	visitorService := service.NewVisitorService(visitorRepo)

	sweep, err := sweeper.New(sessionService, cfg.SweepSchedule)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cfg.SweepSchedule, err)
	}

	server := &Server{
		config:    cfg,
		database:  database,
		publisher: publisher,
		sweeper:   sweep,
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.GetHost(), cfg.GetPort()),
			Handler: router.NewRouter(cfg, sessionService, visitorService),
		},
	}

	// Create and assign shutdown handler
	server.shutdownHandler = NewShutdownHandler(server)

	return server, nil
}

// Run starts the server with graceful shutdown using ShutdownHandler
func (s *Server) Run() error {
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	s.sweeper.Start()
	serverDone := s.startServerGoroutine()

	return s.shutdownHandler.HandleShutdown(serverDone, osSignals)
}

// startServerGoroutine starts the HTTP server in a goroutine and returns a channel for errors
func (s *Server) startServerGoroutine() chan error {
	serverDone := make(chan error, 1)

	go func() {
		slog.Info("Starting communication session service",
			"host", s.config.GetHost(),
			"port", s.config.GetPort())

		serverDone <- s.startServer()
	}()

	return serverDone
}

// startServer starts the HTTP server and handles errors
func (s *Server) startServer() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
