package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bjarke-xyz/applications-api/internal/config"
	"github.com/bjarke-xyz/applications-api/internal/metrics"
	"github.com/bjarke-xyz/applications-api/internal/service"
)

//go:embed static
var staticFiles embed.FS

const requestTimeout = 30 * time.Second

// ServiceFactory builds the request scoped application service.
type ServiceFactory func(r *http.Request) *service.ApplicationService

type server struct {
	logger *slog.Logger

	newService ServiceFactory
	feed       *feedHub
	cors       config.CORSSettings

	staticFilesFs fs.FS
}

func NewServer(ctx context.Context, logger *slog.Logger, newService ServiceFactory, corsSettings config.CORSSettings) (*server, error) {
	staticFilesFs, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	feed := newFeedHub(logger)
	go feed.Listen(ctx)
	return &server{
		logger:        logger,
		newService:    newService,
		feed:          feed,
		cors:          corsSettings,
		staticFilesFs: staticFilesFs,
	}, nil
}

func (s *server) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cors.AllowOrigins,
		AllowedMethods:   s.cors.AllowMethods,
		AllowedHeaders:   s.cors.AllowHeaders,
		AllowCredentials: s.cors.AllowCredentials,
	}))

	r.Get("/up", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "up!")
	})
	r.Handle("/openapi.yaml", http.FileServer(http.FS(s.staticFilesFs)))

	r.Route("/applications", func(r chi.Router) {
		// the feed is long lived and must not be cut by the request timeout
		r.Get("/feed", s.handleFeed)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Get("/", s.handleGetApplications)
			r.Post("/", s.handleCreateApplication)
			r.Get("/{id}", s.handleGetApplication)
		})
	})
	return r
}
