package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/garda-insights/riskmap/internal/config"
	"github.com/garda-insights/riskmap/internal/geo"
)

// Server wires the pipeline behind an HTTP API.
type Server struct {
	cfg       *config.Config
	centroids *geo.CentroidTable
	session   *session
	// group collapses concurrent identical recomputes so a burst of
	// equivalent requests runs the pipeline once.
	group   singleflight.Group
	limiter *rate.Limiter
}

// New builds a Server from configuration and a centroid table.
func New(cfg *config.Config, centroids *geo.CentroidTable) *Server {
	return &Server{
		cfg:       cfg,
		centroids: centroids,
		session:   &session{},
		limiter:   rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst),
	}
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(s.logRequests)
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/dataset", s.handleUpload)
		r.Get("/scores", s.handleScores)
		r.Get("/zones", s.handleZones)
		r.Get("/summary", s.handleSummary)
		r.Get("/matrix", s.handleMatrix)
		r.Get("/geojson", s.handleGeoJSON)
		r.Get("/latest", s.handleLatest)
	})

	return r
}

// HTTPServer returns a configured http.Server for the router.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
