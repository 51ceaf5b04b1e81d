// Command lives runs a demographic microsimulation of households across a
// map of towns and reports the social-care tax burden it ends with.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/lives/internal/api"
	"github.com/talgya/lives/internal/config"
	"github.com/talgya/lives/internal/engine"
	"github.com/talgya/lives/internal/housing"
	"github.com/talgya/lives/internal/logging"
	"github.com/talgya/lives/internal/persistence"
	"github.com/talgya/lives/internal/rates"
	"github.com/talgya/lives/internal/world"
)

func main() {
	if err := run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	rt, err := config.LoadRuntime()
	if err != nil {
		return fmt.Errorf("runtime config: %w", err)
	}
	logging.Init(rt.Logging.Level, rt.Logging.Format)

	params, err := rt.LoadParams()
	if err != nil {
		return fmt.Errorf("parameters: %w", err)
	}

	// ── Rate tables ───────────────────────────────────────────────────
	var tables *rates.Tables
	if rt.RatesDir != "" {
		if tables, err = rates.Load(rt.RatesDir); err != nil {
			return fmt.Errorf("rate tables: %w", err)
		}
		slog.Info("rate tables loaded", "dir", rt.RatesDir)
	}

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(rt.DBPath); dir != "" {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(rt.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", rt.DBPath)

	opts := engine.Options{Seed: rt.Seed, Rates: tables}
	if rt.Resume {
		snap, err := db.LoadSnapshot()
		switch {
		case errors.Is(err, persistence.ErrNoSnapshot):
			slog.Info("no saved snapshot found, starting fresh")
		case err != nil:
			return fmt.Errorf("load snapshot: %w", err)
		default:
			opts.Snapshot = snap
			slog.Info("snapshot restored", "year", snap.Year, "people", len(snap.Population.All))
		}
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim, err := engine.New(params, opts)
	if err != nil {
		return err
	}
	if opts.Snapshot != nil {
		if series, err := db.LoadSeries(); err == nil {
			sim.Stats = series
		}
		if house, err := db.NarratedHouse(); err == nil {
			lines, _ := db.RecentNarration(params.Display.MaxTextUpdateList)
			sim.Narrator.Resume(house, lines)
		}
	}
	for size, n := range world.SizeCounts(sim.Map) {
		name := fmt.Sprintf("class %d", size)
		if size < len(params.Map.HouseClasses) {
			name = params.Map.HouseClasses[size]
		}
		slog.Info("houses", "class", name, "count", n)
	}

	feed := api.NewFeed()
	feed.Publish(sim)

	var server *api.Server
	if rt.API.Port > 0 {
		server = api.NewServer(feed, api.Config{
			Port:           rt.API.Port,
			CORSOrigins:    rt.API.CORSOrigins,
			RateLimitRPS:   rt.API.RateLimitRPS,
			RateLimitBurst: rt.API.RateLimitBurst,
		})
		server.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.NewEngine(sim)
	eng.OnYear = func(rec engine.Record) {
		feed.Publish(sim)
	}

	fmt.Printf("\nSimulating %s people in %s houses, %d to %d.\n",
		humanize.Comma(int64(len(sim.Pop.Living))),
		humanize.Comma(int64(sim.Map.HouseCount())),
		sim.Year, params.Run.EndYear)

	res, runErr := eng.Run(ctx)
	switch {
	case errors.Is(runErr, housing.ErrNoVacantHouse),
		errors.Is(runErr, engine.ErrNoTaxpayers),
		errors.Is(runErr, engine.ErrNoAdopter):
		slog.Error("population outgrew the configured capacity", "error", runErr)
	case errors.Is(runErr, context.Canceled):
		slog.Info("run interrupted", "year", res.FinalYear)
	case runErr != nil:
		slog.Error("run aborted", "error", runErr)
	}

	// Final save. A run that failed mid-year leaves no snapshot.
	slog.Info("final save...")
	if err := db.SaveOutcome(sim, runErr); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Printf("\nRun %s (seed %d) reached %d.\n", res.RunID, res.Seed, res.FinalYear)
	fmt.Printf("Tax burden per taxpayer: £%s a year\n", humanize.CommafWithDigits(res.TaxBurden, 2))
	fmt.Printf("People ever lived: %s\n", humanize.Comma(int64(len(sim.Pop.All))))

	if server != nil && ctx.Err() == nil {
		fmt.Printf("API: http://localhost:%d/api/v1/status (Ctrl+C to stop)\n", rt.API.Port)
		<-ctx.Done()
	}
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP shutdown failed", "error", err)
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
