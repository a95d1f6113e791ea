// Package server exposes the solver over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/app"
	"github.com/SeamusWaldron/cubesolver/internal/telemetry"
)

const maxBodyBytes = 4 << 10

// Server handles solve requests, at most maxConcurrent at a time.
type Server struct {
	svc      *app.Service
	metrics  *telemetry.Metrics
	log      zerolog.Logger
	validate *validator.Validate
	sem      chan struct{}
	mux      *http.ServeMux
}

// New creates a server. metrics may be nil, in which case /metrics is not
// served.
func New(svc *app.Service, metrics *telemetry.Metrics, maxConcurrent int, log zerolog.Logger) *Server {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	s := &Server{
		svc:      svc,
		metrics:  metrics,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		sem:      make(chan struct{}, maxConcurrent),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /v1/solve", s.handleSolve)
	s.mux.HandleFunc("POST /v1/verify", s.handleVerify)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	if metrics != nil {
		s.mux.Handle("GET /metrics", metrics.Handler())
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Facelets  string `json:"facelets" validate:"required,len=54"`
	MaxDepth  int    `json:"max_depth" validate:"omitempty,min=1,max=30"`
	TimeoutMs int    `json:"timeout_ms" validate:"omitempty,min=1,max=600000"`
	NoCache   bool   `json:"no_cache"`
}

// SolveResponse is the body of a 200 reply to POST /v1/solve.
type SolveResponse struct {
	ID        string `json:"id,omitempty"`
	Status    string `json:"status"`
	Solution  string `json:"solution"`
	Length    int    `json:"length"`
	Facelets  string `json:"facelets"`
	MaxDepth  int    `json:"max_depth"`
	Nodes     uint64 `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Cached    bool   `json:"cached"`
}

// NewSolveResponse converts a service result to its wire form.
func NewSolveResponse(res app.Result) SolveResponse {
	return SolveResponse{
		ID:        res.ID,
		Status:    res.Status.String(),
		Solution:  res.Solution.String(),
		Length:    res.Len(),
		Facelets:  res.Facelets,
		MaxDepth:  res.MaxDepth,
		Nodes:     res.Nodes,
		ElapsedMs: res.Elapsed.Milliseconds(),
		Cached:    res.Cached,
	}
}

// VerifyRequest is the body of POST /v1/verify.
type VerifyRequest struct {
	Facelets string `json:"facelets" validate:"required,len=54"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if !s.decode(w, r, &req) {
		return
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-r.Context().Done():
		writeError(w, http.StatusServiceUnavailable, "busy", "request cancelled while waiting for a solver")
		return
	}

	res, err := s.svc.Solve(app.Request{
		Facelets: req.Facelets,
		MaxDepth: req.MaxDepth,
		Timeout:  time.Duration(req.TimeoutMs) * time.Millisecond,
		Source:   "http",
		NoCache:  req.NoCache,
	})
	if err != nil {
		s.writeSolveError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewSolveResponse(res))
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !s.decode(w, r, &req) {
		return
	}
	state, err := s.svc.Solver().Inspect(req.Facelets)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		s.reject(w, "malformed_request", err)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Facelets" {
			s.reject(w, "malformed_input", fmt.Errorf("facelets must be %s", describeTag(verrs[0])))
			return false
		}
		s.reject(w, "invalid_option", err)
		return false
	}
	return true
}

func describeTag(fe validator.FieldError) string {
	if fe.Tag() == "len" {
		return "exactly " + fe.Param() + " characters"
	}
	return fe.Tag()
}

func (s *Server) reject(w http.ResponseWriter, kind string, err error) {
	if s.metrics != nil {
		s.metrics.RecordRejected(kind)
	}
	writeError(w, http.StatusBadRequest, kind, err.Error())
}

func (s *Server) writeSolveError(w http.ResponseWriter, err error) {
	kind := cubesolver.ErrorKind(err)
	if cubesolver.IsInputError(err) {
		writeError(w, http.StatusBadRequest, kind, err.Error())
		return
	}
	s.log.Error().Err(err).Str("kind", kind).Msg("solve failed")
	writeError(w, http.StatusInternalServerError, kind, err.Error())
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, ErrorKind: kind})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
