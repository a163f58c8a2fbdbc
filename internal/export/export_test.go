package export

import (
	"context"
	"database/sql"
	"errors"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/screentime/internal/api"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		ExportedAt: time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC),
		Device:     "pixel",
		Rankings: []api.AppRanking{
			{Rank: 1, AppName: "WeChat", PackageID: "com.tencent.mm", Category: "Social",
				TotalDurationMS: 7500000, LaunchCount: 120, NotificationCount: 40, Percentage: 62.5, ActiveDays: 7},
			{Rank: 2, AppName: "Chrome, Beta", PackageID: "com.chrome.beta", Category: "Tools",
				TotalDurationMS: 4500000, LaunchCount: 30, Percentage: 37.5, ActiveDays: 5},
		},
		Daily: []api.DailyStat{
			{Date: "20240115", TotalDurationMS: 3600000, UniqueApps: 12, LaunchCount: 80, TopApp: "WeChat"},
			{Date: "20240116", TotalDurationMS: 5400000, UniqueApps: 9, LaunchCount: 70, TopApp: "Chrome"},
		},
	}
}

// ============================================================
// Format
// ============================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"JSON", FormatJSON},
		{"sqlite", FormatSQLite},
		{"db", FormatSQLite},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestFormatNames(t *testing.T) {
	if FormatCSV.String() != "CSV" || FormatSQLite.Ext() != "db" || FormatJSON.Ext() != "json" {
		t.Fatal("unexpected format names")
	}
	if len(Formats) != 3 {
		t.Fatalf("expected 3 formats, got %d", len(Formats))
	}
}

func TestDefaultPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	path, err := DefaultPath(FormatJSON, now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "screentime-export-2024-03-09.json" {
		t.Fatalf("unexpected path %q", path)
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := ToCSV(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// meta + rankings header + 2 + daily header + 2 (blank line skipped)
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d: %v", len(records), records)
	}
	if records[0][3] != "pixel" {
		t.Fatalf("unexpected meta row %v", records[0])
	}
	if records[1][0] != "Rank" || records[4][0] != "Date" {
		t.Fatalf("section headers misplaced: %v / %v", records[1], records[4])
	}
	if records[3][1] != "Chrome, Beta" {
		t.Fatalf("comma in app name not preserved: %v", records[3])
	}
	if records[2][5] != "2h 5m" {
		t.Fatalf("unexpected duration column %q", records[2][5])
	}
	if records[5][0] != "2024-01-15" {
		t.Fatalf("date not formatted: %q", records[5][0])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(Snapshot{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "all") {
		t.Fatal("expected device label 'all' for empty device")
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(sampleSnapshot(), filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Fatal("expected error")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	if err := ToJSON(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ExportedAt != "2024-01-20T08:00:00Z" || got.Device != "pixel" {
		t.Fatalf("unexpected header %+v", got)
	}
	if len(got.Rankings) != 2 || got.Rankings[0].PackageID != "com.tencent.mm" {
		t.Fatalf("unexpected rankings %+v", got.Rankings)
	}
	if len(got.Daily) != 2 || got.Daily[1].Date != "20240116" {
		t.Fatalf("unexpected daily %+v", got.Daily)
	}
}

func TestToJSONEmptyListsNotNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(Snapshot{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "null") {
		t.Fatalf("expected empty arrays, got %s", data)
	}
}

// ============================================================
// SQLite
// ============================================================

func TestToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap", "test.db")
	if err := ToSQLite(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToSQLite: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var version int
	db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != snapshotVersion {
		t.Fatalf("expected user_version %d, got %d", snapshotVersion, version)
	}

	var n int
	db.QueryRow("SELECT COUNT(*) FROM rankings").Scan(&n)
	if n != 2 {
		t.Fatalf("expected 2 rankings, got %d", n)
	}
	var name string
	db.QueryRow("SELECT app_name FROM rankings WHERE rank = 1").Scan(&name)
	if name != "WeChat" {
		t.Fatalf("unexpected rank 1 app %q", name)
	}

	db.QueryRow("SELECT COUNT(*) FROM daily_stats").Scan(&n)
	if n != 2 {
		t.Fatalf("expected 2 daily rows, got %d", n)
	}

	var device string
	db.QueryRow("SELECT value FROM meta WHERE key = 'device'").Scan(&device)
	if device != "pixel" {
		t.Fatalf("unexpected device %q", device)
	}
}

func TestToSQLiteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	if err := ToSQLite(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}
	// A second export must not collide on primary keys.
	if err := ToSQLite(sampleSnapshot(), path); err != nil {
		t.Fatalf("second export: %v", err)
	}
}

func TestToSQLiteTiedRanks(t *testing.T) {
	s := sampleSnapshot()
	s.Rankings[1].Rank = 1
	s.Rankings[1].AvgDailyDuration = 900000.5
	path := filepath.Join(t.TempDir(), "tied.db")
	if err := ToSQLite(s, path); err != nil {
		t.Fatalf("tied ranks should still export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	db.QueryRow("SELECT COUNT(*) FROM rankings WHERE rank = 1").Scan(&n)
	if n != 2 {
		t.Fatalf("expected both rank 1 rows, got %d", n)
	}
	var avg float64
	db.QueryRow("SELECT avg_daily_duration FROM rankings WHERE package_id = 'com.chrome.beta'").Scan(&avg)
	if avg != 900000.5 {
		t.Fatalf("fractional average lost: %v", avg)
	}
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Formats {
		path := filepath.Join(dir, "out."+f.Ext())
		if err := Write(sampleSnapshot(), f, path); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("%s: file not written: %v", f, err)
		}
	}
	if err := Write(sampleSnapshot(), Format(9), filepath.Join(dir, "x")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// ============================================================
// Collect
// ============================================================

type fakeFetcher struct {
	rankings   []api.AppRanking
	daily      []api.DailyStat
	err        error
	gotRanking api.RankingParams
	gotDaily   api.DailyParams
}

func (f *fakeFetcher) Rankings(_ context.Context, p api.RankingParams) ([]api.AppRanking, error) {
	f.gotRanking = p
	return f.rankings, f.err
}

func (f *fakeFetcher) DailyStats(_ context.Context, p api.DailyParams) ([]api.DailyStat, error) {
	f.gotDaily = p
	return f.daily, nil
}

func TestCollect(t *testing.T) {
	snap := sampleSnapshot()
	f := &fakeFetcher{rankings: snap.Rankings, daily: snap.Daily}
	q := Query{
		Rankings: api.RankingParams{Limit: 50, OrderBy: api.OrderByLaunches, Device: "pixel"},
		Daily:    api.DailyParams{Start: "20240101", Device: "pixel"},
	}

	got, err := Collect(context.Background(), f, q, snap.ExportedAt)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got.Device != "pixel" || !got.ExportedAt.Equal(snap.ExportedAt) {
		t.Fatalf("unexpected header %+v", got)
	}
	if len(got.Rankings) != 2 || len(got.Daily) != 2 {
		t.Fatalf("unexpected contents %+v", got)
	}
	if f.gotRanking != q.Rankings || f.gotDaily != q.Daily {
		t.Fatalf("params not forwarded: %+v / %+v", f.gotRanking, f.gotDaily)
	}
}

func TestCollectError(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeFetcher{err: boom}
	if _, err := Collect(context.Background(), f, Query{}, time.Now()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
