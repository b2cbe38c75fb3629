// ABOUTME: HTTP server exposing the session store as a JSON API
// ABOUTME: Also renders an embedded read-only HTML dashboard at /
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/viz"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	store     *db.Store
	auditor   *insights.Service
	logger    *zap.Logger
	templates *template.Template
	router    chi.Router
	version   string
	started   time.Time
}

func NewServer(store *db.Store, auditor *insights.Service, logger *zap.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"bar": func(n, maxCount int) int {
			if maxCount <= 0 {
				return 0
			}
			return n * 100 / maxCount
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		store:     store,
		auditor:   auditor,
		logger:    logger,
		templates: tmpl,
		version:   version,
		started:   time.Now(),
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.handleListContacts)
			r.Post("/", s.handleAddContact)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetContact)
				r.Put("/", s.handleUpdateContact)
				r.Delete("/", s.handleDeleteContact)
				r.Put("/status", s.handleSetStatus)
				r.Put("/cadence", s.handleSetCadence)
				r.Post("/interactions", s.handleLogInteraction)
				r.Post("/events", s.handleAddEvent)
				r.Post("/events/{eventID}/complete", s.handleCompleteEvent)
			})
		})

		r.Get("/board", s.handleBoard)
		r.Get("/followups", s.handleFollowups)
		r.Get("/stats", s.handleStats)
		r.Get("/trend", s.handleTrend)

		r.Post("/audit", s.handleAudit)
		r.Get("/audit/latest", s.handleLatestAudit)
		r.Get("/audit/status", s.handleAuditStatus)
	})

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"uptime":   time.Since(s.started).Seconds(),
		"contacts": s.store.Len(),
		"today":    s.store.Today(),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := viz.GenerateDashboardStats(s.store)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	contacts := s.store.Contacts()
	data := map[string]any{
		"Title":     "Kinetic",
		"Stats":     stats,
		"FollowUps": db.FollowUpQueue(contacts, stats.Today),
		"Board":     db.Board(contacts),
		"MaxStage":  maxStage(stats.Pipeline),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.logger.Error("template error", zap.String("template", "dashboard.html"), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func maxStage(pipeline []viz.PipelineStage) int {
	m := 0
	for _, p := range pipeline {
		m = max(m, p.Count)
	}
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func writeError(w http.ResponseWriter, status int, err error, retryable bool) {
	writeJSON(w, status, errorBody{Error: err.Error(), Retryable: retryable})
}
