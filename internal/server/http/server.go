// Package httpserver provides the HTTP REST API server for the music catalog service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/helixir/music-catalog-service/internal/database"
	"github.com/helixir/music-catalog-service/internal/dedup"
	"github.com/helixir/music-catalog-service/internal/importer"
	"github.com/helixir/music-catalog-service/internal/observability"
	"github.com/helixir/music-catalog-service/internal/repository"
)

// Database is the subset of *database.DB the server depends on: health
// reporting and the advisory lock that serializes CSV imports.
type Database interface {
	Health(ctx context.Context) database.HealthStatus
	TryAcquireImportLock(ctx context.Context) (bool, error)
	ReleaseImportLock(ctx context.Context) error
}

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server

	publisherRepo   repository.PublisherRepository
	publicationRepo repository.PublicationRepository
	workRepo        repository.WorkRepository
	personRepo      repository.PersonRepository
	categoryRepo    repository.CategoryRepository

	merger   *dedup.Merger
	importer *importer.Importer
	db       Database

	threshold float64
	csvDir    string

	rejectedMu sync.Mutex
	rejected   *dedup.RejectedSet

	logger  zerolog.Logger
	metrics *observability.Metrics
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// SimilarityThreshold is the default minimum similarity for duplicate
	// scans; requests may override it per scan.
	SimilarityThreshold float64

	// CSVDir is the directory imports read layout files from.
	CSVDir string
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	publisherRepo repository.PublisherRepository,
	publicationRepo repository.PublicationRepository,
	workRepo repository.WorkRepository,
	personRepo repository.PersonRepository,
	categoryRepo repository.CategoryRepository,
	merger *dedup.Merger,
	imp *importer.Importer,
	db Database,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Server {
	s := &Server{
		publisherRepo:   publisherRepo,
		publicationRepo: publicationRepo,
		workRepo:        workRepo,
		personRepo:      personRepo,
		categoryRepo:    categoryRepo,
		merger:          merger,
		importer:        imp,
		db:              db,
		threshold:       cfg.SimilarityThreshold,
		csvDir:          cfg.CSVDir,
		rejected:        dedup.NewRejectedSet(),
		logger:          logger.With().Str("component", "http-server").Logger(),
		metrics:         metrics,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestContextMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(jsonContentTypeMiddleware)

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/publishers", func(r chi.Router) {
			r.Get("/", s.listPublishers)
			r.Get("/duplicates", s.listDuplicates)
			r.Post("/duplicates/rejections", s.rejectDuplicate)
			r.Get("/{publisherID}", s.getPublisher)
			r.Patch("/{publisherID}", s.renamePublisher)
			r.Delete("/{publisherID}", s.deletePublisher)
			r.Post("/{publisherID}/merge", s.mergePublisher)
		})

		r.Route("/works", func(r chi.Router) {
			r.Get("/", s.listWorks)
			r.Post("/", s.createWork)
			r.Get("/{workID}", s.getWork)
		})

		r.Get("/people", s.listPeople)
		r.Get("/categories", s.listCategories)

		r.Post("/imports", s.runImport)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler returns readiness status.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
