package api

import (
	"sync"

	"github.com/talgya/lives/internal/engine"
)

// Status summarizes a run for the status endpoint.
type Status struct {
	RunID      string  `json:"run_id"`
	Seed       int64   `json:"seed"`
	Year       int     `json:"year"` // Last simulated year
	StartYear  int     `json:"start_year"`
	EndYear    int     `json:"end_year"`
	Population int     `json:"population"`
	EverLived  int     `json:"ever_lived"`
	TaxBurden  float64 `json:"tax_burden"`
	Done       bool    `json:"done"`
}

// Feed holds copies of the latest observable run state. The engine
// publishes between years; HTTP handlers read without touching the live
// population graph.
type Feed struct {
	mu        sync.RWMutex
	status    Status
	series    *engine.Series
	narration []string
	narrated  string
	pyramid   *engine.Pyramid
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{series: &engine.Series{}}
}

// Publish copies the simulation's observable state into the feed. Call it
// from the goroutine that steps the simulation.
func (f *Feed) Publish(sim *engine.Simulation) {
	st := Status{
		RunID:      sim.RunID,
		Seed:       sim.Seed(),
		Year:       sim.Year - 1,
		StartYear:  sim.Params.Run.StartYear,
		EndYear:    sim.Params.Run.EndYear,
		Population: len(sim.Pop.Living),
		EverLived:  len(sim.Pop.All),
		Done:       sim.Done(),
	}
	if rec, ok := sim.Stats.Last(); ok {
		st.TaxBurden = rec.TaxBurden
	}
	series := sim.Stats.From(sim.Params.Run.StatsCollectFrom)
	lines := sim.Narrator.Lines()
	pyramid := sim.Pyramid.Clone()
	narrated := ""
	if h := sim.Map.House(sim.Narrator.House()); h != nil {
		narrated = h.Name
	}

	f.mu.Lock()
	f.status = st
	f.series = series
	f.narration = lines
	f.narrated = narrated
	f.pyramid = pyramid
	f.mu.Unlock()
}

// Status returns the latest published status.
func (f *Feed) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// Series returns the published series from year onwards.
func (f *Feed) Series(from int) *engine.Series {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.series.From(from)
}

// Narration returns the narrated house name and its latest lines.
func (f *Feed) Narration() (string, []string) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.narrated, append([]string(nil), f.narration...)
}

// Pyramid returns the latest published pyramid, or nil.
func (f *Feed) Pyramid() *engine.Pyramid {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pyramid
}
