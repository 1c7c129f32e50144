package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterOptions configures NewRouter
type RouterOptions struct {
	AllowedOrigins []string
	// Events serves /events when set
	Events http.Handler
	Logger *log.Logger
}

// NewRouter mounts every topology route behind the shared middleware stack
func NewRouter(h *TopologyHandler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Logger(logger))
	r.Use(Recover(logger))
	r.Use(CORS(opts.AllowedOrigins))

	r.Get("/", h.Home)
	r.Post("/save_simulation", h.SaveSimulation)

	r.Route("/api", func(r chi.Router) {
		r.Route("/topology", func(r chi.Router) {
			r.Get("/load", h.LoadTopology)
			r.Post("/save", h.SaveTopology)
			r.Post("/reset", h.ResetTopology)
			r.Get("/export", h.ExportTopology)
			r.Post("/import", h.ImportTopology)
			r.Get("/history", h.TopologyHistory)
		})
		r.Get("/simulation/static_topology", h.StaticTopology)
		r.Get("/network-metrics", h.NetworkMetrics)
		r.Get("/qos-report", h.QoSReport)
	})

	if opts.Events != nil {
		r.Method(http.MethodGet, "/events", opts.Events)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, Envelope{Status: StatusError, Message: "not found"}, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, Envelope{Status: StatusError, Message: "method not allowed"}, http.StatusMethodNotAllowed)
	})

	return r
}
