package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/alexanderramin/caseload/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the case rankings and reports as read-only JSON.
type Server struct {
	cases   service.CaseService
	reports service.ReportService
	logger  *slog.Logger
}

func New(cases service.CaseService, reports service.ReportService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{cases: cases, reports: reports, logger: logger}
}

// Routes returns the router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.getHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/cases", s.getCases)
		r.Get("/cases/{name}", s.getCase)
		r.Route("/reports", func(r chi.Router) {
			r.Get("/overview", s.getOverview)
			r.Get("/load", s.getLoad)
			r.Get("/load/pm/{name}", s.getPMDetail)
			r.Get("/load/staff/{name}", s.getStaffDetail)
			r.Get("/roi", s.getROI)
			r.Get("/budget", s.getBudget)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("http_listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http_shutdown", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) getHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.CaseListRequest{CaseType: q.Get("type"), NamePrefix: q.Get("prefix")}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be a non-negative integer"))
			return
		}
		req.Limit = n
	}
	views, err := s.cases.Rank(r.Context(), req)
	s.respond(w, r, views, err)
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	detail, err := s.cases.Show(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	s.respond(w, r, caseDetailJSON(detail), nil)
}

func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reports.Overview(r.Context())
	s.respond(w, r, resp, err)
}

func (s *Server) getLoad(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reports.Load(r.Context())
	s.respond(w, r, resp, err)
}

func (s *Server) getPMDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reports.PMDetail(r.Context(), chi.URLParam(r, "name"))
	s.respond(w, r, resp, err)
}

func (s *Server) getStaffDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reports.StaffDetail(r.Context(), chi.URLParam(r, "name"))
	s.respond(w, r, resp, err)
}

func (s *Server) getROI(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reports.ROI(r.Context())
	s.respond(w, r, resp, err)
}

func (s *Server) getBudget(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reports.Budget(r.Context())
	s.respond(w, r, resp, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, body any, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, body)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	default:
		s.logger.ErrorContext(r.Context(), "http_handler_failed", "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
