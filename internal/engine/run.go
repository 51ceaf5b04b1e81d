// Package engine runs the annual demographic pipeline over a population
// living on a map of towns.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Result is what a finished run reports to its caller.
type Result struct {
	TaxBurden float64 `json:"tax_burden"` // Final year's value
	Seed      int64   `json:"seed"`
	RunID     string  `json:"run_id"`
	FinalYear int     `json:"final_year"`
	Years     int     `json:"years"` // Years simulated by this Run call
}

// Engine drives a simulation through its year loop.
type Engine struct {
	Sim *Simulation

	// OnYear is called after each simulated year with its record.
	OnYear func(rec Record)
}

// NewEngine creates an engine for sim.
func NewEngine(sim *Simulation) *Engine {
	return &Engine{Sim: sim}
}

// Run simulates every remaining year up to the end year. It stops early,
// returning ctx.Err(), if ctx is cancelled between years.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	s := e.Sim
	start := time.Now()
	slog.Info("run started", "run_id", s.RunID, "from", s.Year, "to", s.Params.Run.EndYear, "seed", s.Seed())

	years := 0
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return e.result(years), err
		}
		if err := s.Step(); err != nil {
			if errors.Is(err, ErrRunComplete) {
				break
			}
			return e.result(years), err
		}
		years++
		if e.OnYear != nil {
			if rec, ok := s.Stats.Last(); ok {
				e.OnYear(rec)
			}
		}
	}

	res := e.result(years)
	slog.Info("run finished",
		"run_id", res.RunID,
		"seed", res.Seed,
		"final_year", res.FinalYear,
		"tax_burden", res.TaxBurden,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return res, nil
}

func (e *Engine) result(years int) Result {
	s := e.Sim
	res := Result{
		Seed:      s.Seed(),
		RunID:     s.RunID,
		FinalYear: s.Year - 1,
		Years:     years,
	}
	if rec, ok := s.Stats.Last(); ok {
		res.TaxBurden = rec.TaxBurden
	}
	return res
}
