package export

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const snapshotVersion = 1

// ToSQLite writes s into a fresh SQLite database at path. An existing file
// at path is replaced.
func ToSQLite(s Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	db, err := openSnapshot(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	if err := writeMeta(tx, s); err != nil {
		return err
	}
	if err := writeRankings(tx, s); err != nil {
		return err
	}
	if err := writeDaily(tx, s); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func openSnapshot(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec pragma: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= snapshotVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rankings (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		rank               INTEGER NOT NULL,
		app_name           TEXT NOT NULL,
		package_id         TEXT NOT NULL,
		category           TEXT NOT NULL DEFAULT '',
		total_duration_ms  INTEGER NOT NULL DEFAULT 0,
		launch_count       INTEGER NOT NULL DEFAULT 0,
		notification_count INTEGER NOT NULL DEFAULT 0,
		percentage         REAL NOT NULL DEFAULT 0,
		active_days        INTEGER NOT NULL DEFAULT 0,
		avg_daily_duration REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS daily_stats (
		date                TEXT PRIMARY KEY,
		total_duration_ms   INTEGER NOT NULL DEFAULT 0,
		unique_apps         INTEGER NOT NULL DEFAULT 0,
		launch_count        INTEGER NOT NULL DEFAULT 0,
		notification_count  INTEGER NOT NULL DEFAULT 0,
		top_app             TEXT NOT NULL DEFAULT '',
		top_app_duration_ms INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(ddl); err != nil {
		return err
	}
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", snapshotVersion))
	return err
}

func writeMeta(tx *sql.Tx, s Snapshot) error {
	meta := [][2]string{
		{"exported_at", s.ExportedAt.UTC().Format(time.RFC3339)},
		{"device", deviceLabel(s.Device)},
	}
	for _, kv := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert meta %q: %w", kv[0], err)
		}
	}
	return nil
}

func writeRankings(tx *sql.Tx, s Snapshot) error {
	stmt, err := tx.Prepare(`INSERT INTO rankings
		(rank, app_name, package_id, category, total_duration_ms, launch_count,
		 notification_count, percentage, active_days, avg_daily_duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare rankings: %w", err)
	}
	defer stmt.Close()

	for _, r := range s.Rankings {
		if _, err := stmt.Exec(r.Rank, r.AppName, r.PackageID, r.Category, r.TotalDurationMS,
			r.LaunchCount, r.NotificationCount, r.Percentage, r.ActiveDays, r.AvgDailyDuration); err != nil {
			return fmt.Errorf("insert ranking %d: %w", r.Rank, err)
		}
	}
	return nil
}

func writeDaily(tx *sql.Tx, s Snapshot) error {
	stmt, err := tx.Prepare(`INSERT INTO daily_stats
		(date, total_duration_ms, unique_apps, launch_count, notification_count, top_app, top_app_duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare daily stats: %w", err)
	}
	defer stmt.Close()

	for _, d := range s.Daily {
		if _, err := stmt.Exec(d.Date, d.TotalDurationMS, d.UniqueApps, d.LaunchCount,
			d.NotificationCount, d.TopApp, d.TopAppDurationMS); err != nil {
			return fmt.Errorf("insert daily stat %s: %w", d.Date, err)
		}
	}
	return nil
}
