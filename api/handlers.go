package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rustyeddy/compound/analysis"
	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/journal"
	"github.com/rustyeddy/compound/plan"
)

type planResponse struct {
	Settings plan.Settings     `json:"settings"`
	Rows     []plan.Checkpoint `json:"rows"`
	Summary  plan.Summary      `json:"summary"`
}

// settingsFrom applies query overrides (start, risk, reward, divisor, steps)
// to the configured settings.
func (s *Server) settingsFrom(r *http.Request) (plan.Settings, error) {
	out := s.settings
	q := r.URL.Query()

	floats := []struct {
		key string
		dst *float64
	}{
		{"start", &out.StartAmount},
		{"risk", &out.RiskPercentage},
		{"reward", &out.RewardRatio},
		{"divisor", &out.LotDivisor},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return out, badRequest{fmt.Errorf("%s: %w", f.key, err)}
		}
		*f.dst = x
	}
	if v := q.Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return out, badRequest{fmt.Errorf("steps: %w", err)}
		}
		out.Steps = n
	}

	if err := plan.Check(out).Err(); err != nil {
		return out, badRequest{err}
	}
	return out, nil
}

// project generates the plan for settings and rejects projections that
// overflow float64.
func project(settings plan.Settings) ([]plan.Checkpoint, error) {
	rows := plan.Generate(settings)
	if !plan.Finite(rows) {
		return nil, badRequest{fmt.Errorf("plan overflows: reduce risk, reward or steps")}
	}
	return rows, nil
}

func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsFrom(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rows, err := project(settings)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, planResponse{
		Settings: settings,
		Rows:     rows,
		Summary:  plan.Summarize(settings, rows),
	})
}

func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.coord.Progress(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

type registerRequest struct {
	Step     int      `json:"step"`
	Outcome  string   `json:"outcome"`
	Amount   *float64 `json:"amount,omitempty"`   // planned payoff when absent
	Currency string   `json:"currency,omitempty"` // currency of Amount, canonical when empty
	Date     string   `json:"date,omitempty"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequest{fmt.Errorf("decode request: %w", err)})
		return
	}

	outcome, err := journal.ParseOutcome(req.Outcome)
	if err != nil {
		s.writeError(w, badRequest{err})
		return
	}

	var amount float64
	if req.Amount != nil {
		code, err := currency.Parse(req.Currency)
		if err != nil {
			s.writeError(w, badRequest{err})
			return
		}
		amount = currency.ToCanonical(*req.Amount, code)
	} else {
		row, ok := plan.Find(plan.Generate(s.settings), req.Step)
		if !ok {
			s.writeError(w, badRequest{fmt.Errorf("step %d is not in the plan", req.Step)})
			return
		}
		amount = row.Payoff(outcome == journal.Win)
	}

	res, err := s.coord.RegisterResult(r.Context(), req.Step, outcome, amount, req.Date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type resetResponse struct {
	Progress journal.PlanProgress `json:"progress"`
	Journal  journal.TrackerState `json:"journal"`
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	p, st, err := s.coord.FullReset(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resetResponse{Progress: p, Journal: st})
}

type monthResponse struct {
	Month  string               `json:"month"`
	Days   journal.TrackerState `json:"days"`
	Profit float64              `json:"profit"`
	Weeks  []journal.WeekTotal  `json:"weeks"`
}

// journalHandler returns the whole journal, or one month with its weekly
// totals when ?month=YYYY-MM is given.
func (s *Server) journalHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.coord.Journal(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	m := r.URL.Query().Get("month")
	if m == "" {
		s.writeJSON(w, http.StatusOK, st)
		return
	}
	t, err := time.Parse("2006-01", m)
	if err != nil {
		s.writeError(w, badRequest{fmt.Errorf("month must be YYYY-MM: %w", err)})
		return
	}
	s.writeJSON(w, http.StatusOK, monthResponse{
		Month:  m,
		Days:   st.Month(t.Year(), t.Month()),
		Profit: journal.MonthlyProfit(st, t.Year(), t.Month()),
		Weeks:  journal.WeeklyTotals(st, t.Year(), t.Month()),
	})
}

type dayRequest struct {
	Profit   float64 `json:"profit"`
	Currency string  `json:"currency,omitempty"` // currency of Profit, canonical when empty
	Trades   int     `json:"trades"`
	Wins     int     `json:"wins"`
}

func (s *Server) setDayHandler(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequest{fmt.Errorf("decode request: %w", err)})
		return
	}

	code, err := currency.Parse(req.Currency)
	if err != nil {
		s.writeError(w, badRequest{err})
		return
	}

	st, err := s.coord.SetDay(r.Context(), journal.DailyTradeData{
		Date:   mux.Vars(r)["date"],
		Profit: currency.ToCanonical(req.Profit, code),
		Trades: req.Trades,
		Wins:   req.Wins,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) deleteDayHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.coord.DeleteDay(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) clearJournalHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.coord.ClearJournal(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, journal.TrackerState{})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.coord.Journal(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, journal.ComputeStats(st, s.settings.StartAmount))
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
	OK       bool   `json:"ok"`
}

// analyzeHandler always answers 200; a failed analysis is reported as its
// display message.
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsFrom(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rows, err := project(settings)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.analyzer == nil {
		s.writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis.DisplayError(analysis.ErrMissingAPIKey)})
		return
	}

	text, err := s.analyzer.Analyze(r.Context(), rows, settings.RiskPercentage, settings.RewardRatio)
	if err != nil {
		s.log.Warn("analysis failed", "error", err)
		s.writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis.DisplayError(err)})
		return
	}
	s.writeJSON(w, http.StatusOK, analyzeResponse{Analysis: text, OK: true})
}
