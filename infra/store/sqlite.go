// Package store persists validation reports in a SQLite database so KPI
// history survives across runs.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/buscheck/core/model"
	"github.com/kilianp07/buscheck/core/report"
)

// Config controls report persistence.
type Config struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SetDefaults applies the default database location.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = "buscheck.db"
	}
}

// RunRecord is one stored validation run.
type RunRecord struct {
	RunID            string
	Time             time.Time
	Issues           int
	Violations       int
	VehiclesUsed     int
	DeadheadMinutes  float64
	TotalEnergyKWh   float64
	LowestBatteryKWh float64
}

// SQLiteStore persists validation runs and their issues.
type SQLiteStore struct {
	db *sql.DB
}

// New opens or creates the database and ensures schema.
func New(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS validation_run (
        run_id TEXT PRIMARY KEY,
        generated_at INTEGER,
        issues INTEGER,
        violations INTEGER,
        vehicles_used INTEGER,
        deadhead_minutes REAL,
        energy_kwh REAL,
        lowest_battery_kwh REAL
    );
    CREATE TABLE IF NOT EXISTS validation_issue (
        run_id TEXT,
        seq INTEGER,
        kind TEXT,
        vehicle TEXT,
        location TEXT,
        time TEXT,
        measured REAL,
        min_allowed REAL,
        max_allowed REAL,
        direction TEXT,
        message TEXT,
        PRIMARY KEY(run_id, seq)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// SaveReport inserts the run and all of its issues in one transaction.
func (s *SQLiteStore) SaveReport(r report.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO validation_run
        (run_id, generated_at, issues, violations, vehicles_used, deadhead_minutes, energy_kwh, lowest_battery_kwh)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GeneratedAt.Unix(), len(r.Issues), r.Violations(),
		r.KPI.VehiclesUsed, r.KPI.DeadheadMinutes, r.KPI.TotalEnergyKWh, r.KPI.LowestBatteryKWh)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for i, is := range r.Issues {
		_, err = tx.Exec(`INSERT INTO validation_issue
            (run_id, seq, kind, vehicle, location, time, measured, min_allowed, max_allowed, direction, message)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i, string(is.Kind), is.Vehicle, is.Location, is.Time.String(),
			is.Measured, is.MinAllowed, is.MaxAllowed, string(is.Direction), is.Message)
		if err != nil {
			return fmt.Errorf("insert issue %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Runs lists stored runs, most recent first.
func (s *SQLiteStore) Runs() ([]RunRecord, error) {
	rows, err := s.db.Query(`SELECT run_id, generated_at, issues, violations,
        vehicles_used, deadhead_minutes, energy_kwh, lowest_battery_kwh
        FROM validation_run ORDER BY generated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var ts int64
		if err := rows.Scan(&r.RunID, &ts, &r.Issues, &r.Violations,
			&r.VehiclesUsed, &r.DeadheadMinutes, &r.TotalEnergyKWh, &r.LowestBatteryKWh); err != nil {
			return nil, err
		}
		r.Time = time.Unix(ts, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Issues returns the stored issues of one run in original order.
func (s *SQLiteStore) Issues(runID string) ([]model.Issue, error) {
	rows, err := s.db.Query(`SELECT kind, vehicle, location, time, measured,
        min_allowed, max_allowed, direction, message
        FROM validation_issue WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Issue
	for rows.Next() {
		var is model.Issue
		var kind, direction, timeStr string
		if err := rows.Scan(&kind, &is.Vehicle, &is.Location, &timeStr,
			&is.Measured, &is.MinAllowed, &is.MaxAllowed, &direction, &is.Message); err != nil {
			return nil, err
		}
		is.Kind = model.IssueKind(kind)
		is.Direction = model.CoverageDirection(direction)
		if t, err := model.ParseTimeOfDay(timeStr); err == nil {
			is.Time = t
		}
		out = append(out, is)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
