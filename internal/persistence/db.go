// Package persistence provides SQLite storage for run snapshots, yearly
// statistics and run metadata.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/lives/internal/engine"
	"github.com/talgya/lives/internal/world"
)

// Metadata keys.
const (
	MetaLastYear     = "last_year"
	MetaSeed         = "seed"
	MetaRunID        = "run_id"
	MetaNextPersonID = "next_person_id"
	MetaMapWidth     = "map_width"
	MetaMapHeight    = "map_height"
	MetaTownGrid     = "town_grid"
	MetaNarrated     = "narrated_house"
)

// ErrNoSnapshot is returned when loading from an empty database.
var ErrNoSnapshot = errors.New("no saved snapshot")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS towns (
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		name TEXT NOT NULL,
		density REAL NOT NULL,
		class_bias REAL NOT NULL,
		PRIMARY KEY (x, y)
	);

	CREATE TABLE IF NOT EXISTS houses (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,
		town_x INTEGER NOT NULL,
		town_y INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		occupants_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS people (
		id INTEGER PRIMARY KEY,
		birth_year INTEGER NOT NULL,
		sex INTEGER NOT NULL,
		status INTEGER NOT NULL,
		dead INTEGER NOT NULL,
		care_need_level INTEGER NOT NULL,
		mother INTEGER NOT NULL,
		father INTEGER NOT NULL,
		partner INTEGER NOT NULL,
		house INTEGER NOT NULL,
		sec INTEGER NOT NULL,
		children_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stats (
		year INTEGER PRIMARY KEY,
		population INTEGER NOT NULL,
		households INTEGER NOT NULL,
		avg_household_size REAL NOT NULL,
		marriages INTEGER NOT NULL,
		divorces INTEGER NOT NULL,
		care_demand REAL NOT NULL,
		care_supply REAL NOT NULL,
		taxpayers INTEGER NOT NULL,
		unmet_need REAL NOT NULL,
		family_care_ratio REAL NOT NULL,
		tax_burden REAL NOT NULL,
		marriage_prop REAL NOT NULL,
		ever_lived INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS narration (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		line TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_people_dead ON people(dead);
	CREATE INDEX IF NOT EXISTS idx_houses_town ON houses(town_x, town_y);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSeries writes every recorded year (full replace).
func (db *DB) SaveSeries(series *engine.Series) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM stats"); err != nil {
		return err
	}
	for _, rec := range series.Records() {
		_, err := tx.NamedExec(`INSERT INTO stats
			(year, population, households, avg_household_size, marriages, divorces,
			 care_demand, care_supply, taxpayers, unmet_need, family_care_ratio,
			 tax_burden, marriage_prop, ever_lived)
			VALUES (:year, :population, :households, :avg_household_size, :marriages, :divorces,
			 :care_demand, :care_supply, :taxpayers, :unmet_need, :family_care_ratio,
			 :tax_burden, :marriage_prop, :ever_lived)`, rec)
		if err != nil {
			return fmt.Errorf("insert stats %d: %w", rec.Year, err)
		}
	}

	return tx.Commit()
}

// LoadSeries reads every saved year in order.
func (db *DB) LoadSeries() (*engine.Series, error) {
	var recs []engine.Record
	if err := db.conn.Select(&recs, "SELECT * FROM stats ORDER BY year"); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	series := &engine.Series{}
	for _, r := range recs {
		series.Append(r)
	}
	return series, nil
}

// SaveNarration replaces the stored narration lines.
func (db *DB) SaveNarration(lines []string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM narration"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := tx.Exec("INSERT INTO narration (line) VALUES (?)", line); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentNarration returns up to limit of the latest lines, oldest first.
func (db *DB) RecentNarration(limit int) ([]string, error) {
	var lines []string
	err := db.conn.Select(&lines,
		"SELECT line FROM (SELECT id, line FROM narration ORDER BY id DESC LIMIT ?) ORDER BY id",
		limit,
	)
	return lines, err
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// DeleteMeta removes a metadata key if present.
func (db *DB) DeleteMeta(key string) error {
	_, err := db.conn.Exec("DELETE FROM world_meta WHERE key = ?", key)
	return err
}

// NarratedHouse returns the display house saved with the last run.
func (db *DB) NarratedHouse() (world.HouseID, error) {
	id, err := db.metaInt(MetaNarrated)
	return world.HouseID(id), err
}

func (db *DB) metaInt(key string) (int64, error) {
	v, err := db.GetMeta(key)
	if err != nil {
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	return n, nil
}

// HasSnapshot reports whether a snapshot has been saved.
func (db *DB) HasSnapshot() (bool, error) {
	_, err := db.GetMeta(MetaLastYear)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveOutcome saves a run after its year loop returned runErr. Completed
// and interrupted runs stop between years and are saved in full. A failed
// run stopped inside a year, so only its history is kept and no snapshot
// is left to resume from.
func (db *DB) SaveOutcome(sim *engine.Simulation, runErr error) error {
	if runErr == nil || errors.Is(runErr, context.Canceled) {
		return db.SaveRun(sim)
	}
	return db.SaveFailedRun(sim)
}

// SaveFailedRun keeps the statistics, narration and run identity of a run
// that aborted mid-year, and drops the resume point of any earlier save.
func (db *DB) SaveFailedRun(sim *engine.Simulation) error {
	slog.Warn("run stopped mid-year, not saving a snapshot", "run_id", sim.RunID, "year", sim.Year)

	if err := db.DeleteMeta(MetaLastYear); err != nil {
		return fmt.Errorf("clear snapshot year: %w", err)
	}
	if err := db.SaveSeries(sim.Stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if err := db.SaveNarration(sim.Narrator.Lines()); err != nil {
		return fmt.Errorf("save narration: %w", err)
	}
	return db.saveRunMeta(sim)
}

// SaveRun performs a full save of a simulation: snapshot, statistics,
// narration and metadata.
func (db *DB) SaveRun(sim *engine.Simulation) error {
	slog.Info("saving run", "run_id", sim.RunID, "people", len(sim.Pop.All), "houses", sim.Map.HouseCount())

	if err := db.SaveSnapshot(sim.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := db.SaveSeries(sim.Stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if err := db.SaveNarration(sim.Narrator.Lines()); err != nil {
		return fmt.Errorf("save narration: %w", err)
	}
	if err := db.saveRunMeta(sim); err != nil {
		return err
	}

	slog.Info("run saved", "year", sim.Year-1)
	return nil
}

func (db *DB) saveRunMeta(sim *engine.Simulation) error {
	meta := map[string]string{
		MetaSeed:     strconv.FormatInt(sim.Seed(), 10),
		MetaRunID:    sim.RunID,
		MetaNarrated: strconv.Itoa(int(sim.Narrator.House())),
	}
	for k, v := range meta {
		if err := db.SaveMeta(k, v); err != nil {
			return fmt.Errorf("save meta: %w", err)
		}
	}
	return nil
}
