// Package api serves the planner and the progress journal as JSON over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rustyeddy/compound/internal/logger"
	"github.com/rustyeddy/compound/plan"
	"github.com/rustyeddy/compound/tracker"
)

// Analyzer produces the optional plan assessment. A nil Analyzer answers
// /analyze with the missing-key message.
type Analyzer interface {
	Analyze(ctx context.Context, rows []plan.Checkpoint, risk, reward float64) (string, error)
}

type Server struct {
	coord    *tracker.Coordinator
	settings plan.Settings
	analyzer Analyzer
	log      *logger.Logger
	router   *mux.Router
}

func NewServer(coord *tracker.Coordinator, settings plan.Settings, analyzer Analyzer, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{
		coord:    coord,
		settings: settings,
		analyzer: analyzer,
		log:      log,
	}

	router := mux.NewRouter().StrictSlash(true)
	router.Methods("GET").Path("/plan").HandlerFunc(s.planHandler)
	router.Methods("GET").Path("/progress").HandlerFunc(s.progressHandler)
	router.Methods("POST").Path("/progress/register").HandlerFunc(s.registerHandler)
	router.Methods("POST").Path("/reset").HandlerFunc(s.resetHandler)
	router.Methods("GET").Path("/journal").HandlerFunc(s.journalHandler)
	router.Methods("DELETE").Path("/journal").HandlerFunc(s.clearJournalHandler)
	router.Methods("PUT").Path("/journal/{date}").HandlerFunc(s.setDayHandler)
	router.Methods("DELETE").Path("/journal/{date}").HandlerFunc(s.deleteDayHandler)
	router.Methods("GET").Path("/stats").HandlerFunc(s.statsHandler)
	router.Methods("POST").Path("/analyze").HandlerFunc(s.analyzeHandler)
	s.router = router

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs until ctx is cancelled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("api listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v before the status line goes out, so an unencodable
// value becomes a 500 instead of an empty success.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		b, _ = json.Marshal(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var bad badRequest
	switch {
	case errors.Is(err, tracker.ErrStepMismatch), errors.Is(err, tracker.ErrPlanComplete):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrInvalidOutcome),
		errors.Is(err, tracker.ErrInvalidDate),
		errors.Is(err, tracker.ErrInvalidEntry),
		errors.As(err, &bad):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest marks errors caused by the request itself.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }
