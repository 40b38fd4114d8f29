package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"titanic/internal"
	"titanic/internal/errors"
	"titanic/internal/pipeline"
	"titanic/internal/run"
	"titanic/internal/visualize"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// charts lists the images that may be served from the output directory.
var charts = map[string]bool{
	visualize.AgeHistogramFile: true,
	visualize.FareBoxPlotFile:  true,
}

func init() {
	// sniff whole files; manifest.json outgrows the default read limit
	mimetype.SetLimit(0)
}

// Server exposes the artifacts of a finished run read-only
type Server struct {
	outDir  string
	router  *chi.Mux
	metrics *Metrics
	logger  *internal.Logger
}

// New creates a server over the artifacts in outDir
func New(outDir string, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		outDir:  outDir,
		router:  chi.NewRouter(),
		metrics: NewMetrics(),
		logger:  logger.Named("Server"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	s.router.Get("/report.txt", s.artifact(pipeline.ReportFile))
	s.router.Get("/report.html", s.artifact(pipeline.HTMLReportFile))
	s.router.Get("/manifest.json", s.artifact(run.ManifestFile))
	s.router.Get("/charts/{name}", s.handleChart)

	// report.html links its images relative to itself
	for name := range charts {
		s.router.Get("/"+name, s.artifact(name))
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving %s on %s", s.outDir, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleIndex prefers the HTML report when the run produced one.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(filepath.Join(s.outDir, pipeline.HTMLReportFile)); err == nil {
		s.serveFile(w, r, pipeline.HTMLReportFile)
		return
	}
	s.serveFile(w, r, pipeline.ReportFile)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !charts[name] {
		http.NotFound(w, r)
		return
	}
	s.serveFile(w, r, name)
}

func (s *Server) artifact(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveFile(w, r, name)
	}
}

// serveFile writes an artifact with its sniffed content type.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	data, err := os.ReadFile(filepath.Join(s.outDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			s.metrics.ArtifactMisses.WithLabelValues(name).Inc()
			http.NotFound(w, r)
			return
		}
		s.logger.Error("read %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", mimetype.Detect(data).String())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}
