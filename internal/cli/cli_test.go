package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sadopc/screentime/internal/api"
)

const (
	rankingsJSON = `[{"rank":1,"appName":"WeChat","packageID":"com.tencent.mm","category":"Social","totalDurationMS":7500000,"launchCount":120,"percentage":100}]`
	dailyJSON    = `[{"date":"20240101","totalDurationMS":9000000,"uniqueApps":12,"launchCount":80,"topApp":"WeChat"}]`
	devicesJSON  = `[{"id":"pixel","name":"Pixel 8","type":"phone","isActive":true,"totalRecords":1234,"dateRangeStart":"20240101","dateRangeEnd":"20240131"}]`
)

type fakeAPI struct {
	mu      sync.Mutex
	failing bool
	queries map[string][]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{queries: map[string][]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, "/api/v1/screentime")
		f.mu.Lock()
		f.queries[p] = append(f.queries[p], r.URL.RawQuery)
		failing := f.failing
		f.mu.Unlock()

		if failing {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		switch p {
		case "/rankings":
			w.Write([]byte(rankingsJSON))
		case "/daily":
			w.Write([]byte(dailyJSON))
		case "/devices":
			w.Write([]byte(devicesJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return f, srv.URL + "/api/v1/screentime"
}

func (f *fakeAPI) query(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

// isolate keeps config lookups and default export paths inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	return dir
}

func execute(t *testing.T, baseURL string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--base-url", baseURL, "--log-file="))
	err := cmd.Execute()
	return out.String(), err
}

// ============================================================
// export
// ============================================================

func TestExportJSON(t *testing.T) {
	dir := isolate(t)
	fake, url := newFakeAPI(t)
	path := filepath.Join(dir, "out.json")

	out, err := execute(t, url, "export", "--format", "json", "--output", path, "--device", "pixel")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported 1 apps and 1 days") {
		t.Fatalf("unexpected output %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "com.tencent.mm") {
		t.Fatalf("export missing ranking: %s", data)
	}

	if q := fake.query("/rankings"); len(q) != 1 || q[0] != "device=pixel&limit=20&orderBy=duration" {
		t.Fatalf("unexpected rankings query %v", q)
	}
	if q := fake.query("/daily"); len(q) != 1 || q[0] != "device=pixel" {
		t.Fatalf("unexpected daily query %v", q)
	}
}

func TestExportDefaultPath(t *testing.T) {
	dir := isolate(t)
	_, url := newFakeAPI(t)

	if _, err := execute(t, url, "export", "--format", "sqlite"); err != nil {
		t.Fatalf("export: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "screentime-export-*.db"))
	if len(matches) != 1 {
		t.Fatalf("expected one snapshot in home dir, got %v", matches)
	}
}

func TestExportFlagsOverride(t *testing.T) {
	dir := isolate(t)
	fake, url := newFakeAPI(t)

	_, err := execute(t, url, "export", "--output", filepath.Join(dir, "x.csv"),
		"--limit", "5", "--order-by", "launches", "--start", "20240101", "--end", "20240107")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if q := fake.query("/rankings"); q[0] != "limit=5&orderBy=launches" {
		t.Fatalf("unexpected rankings query %q", q[0])
	}
	if q := fake.query("/daily"); q[0] != "end=20240107&start=20240101" {
		t.Fatalf("unexpected daily query %q", q[0])
	}
}

func TestExportRejectsBadFlags(t *testing.T) {
	isolate(t)
	fake, url := newFakeAPI(t)

	if _, err := execute(t, url, "export", "--format", "xml"); err == nil || !strings.Contains(err.Error(), "unknown export format") {
		t.Fatalf("expected format error, got %v", err)
	}
	if _, err := execute(t, url, "export", "--order-by", "name"); err == nil {
		t.Fatal("expected order-by error")
	}
	if _, err := execute(t, url, "export", "--start", "2024-01-01", "--end", "garbage"); err == nil || !strings.Contains(err.Error(), "YYYYMMDD") {
		t.Fatalf("expected date error, got %v", err)
	}
	if _, err := execute(t, url, "export", "--end", "20240230"); err == nil {
		t.Fatal("expected error for impossible date")
	}
	if len(fake.query("/rankings")) != 0 || len(fake.query("/daily")) != 0 {
		t.Fatal("invalid flags must not reach the backend")
	}
}

func TestExportSwapsReversedRange(t *testing.T) {
	dir := isolate(t)
	fake, url := newFakeAPI(t)

	_, err := execute(t, url, "export", "--output", filepath.Join(dir, "x.csv"),
		"--start", "20240131", "--end", "20240101")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if q := fake.query("/daily"); len(q) != 1 || q[0] != "end=20240131&start=20240101" {
		t.Fatalf("unexpected daily query %v", q)
	}
}

func TestExportBackendFailure(t *testing.T) {
	dir := isolate(t)
	fake, url := newFakeAPI(t)
	fake.failing = true

	_, err := execute(t, url, "export", "--output", filepath.Join(dir, "x.csv"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status in error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "x.csv")); statErr == nil {
		t.Fatal("no file should be written on failure")
	}
}

// ============================================================
// devices
// ============================================================

func TestDevicesTable(t *testing.T) {
	isolate(t)
	_, url := newFakeAPI(t)

	out, err := execute(t, url, "devices")
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	for _, want := range []string{"Pixel 8", "手機", "1,234", "2024-01-01 - 2024-01-31", "never"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDevicesJSON(t *testing.T) {
	isolate(t)
	_, url := newFakeAPI(t)

	out, err := execute(t, url, "devices", "--json")
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	var got []api.Device
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].ID != "pixel" {
		t.Fatalf("unexpected devices %+v", got)
	}
}

func TestRenderDevicesEmpty(t *testing.T) {
	if got := renderDevices(nil); got != "No devices registered." {
		t.Fatalf("got %q", got)
	}
}

// ============================================================
// Configuration layering
// ============================================================

func TestConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)
	fake, url := newFakeAPI(t)

	cfgPath := filepath.Join(dir, "config.yaml")
	os.WriteFile(cfgPath, []byte("rankings:\n  limit: 50\n  order_by: notifications\n"), 0o644)

	if _, err := execute(t, url, "export", "--config", cfgPath, "--output", filepath.Join(dir, "a.csv")); err != nil {
		t.Fatalf("export: %v", err)
	}
	if q := fake.query("/rankings"); q[0] != "limit=50&orderBy=notifications" {
		t.Fatalf("config file not applied: %q", q[0])
	}

	t.Setenv("SCREENTIME_RANKINGS_LIMIT", "10")
	if _, err := execute(t, url, "export", "--config", cfgPath, "--output", filepath.Join(dir, "b.csv")); err != nil {
		t.Fatalf("export: %v", err)
	}
	if q := fake.query("/rankings"); q[1] != "limit=10&orderBy=notifications" {
		t.Fatalf("environment should beat the config file: %q", q[1])
	}
}

func TestMissingConfigFile(t *testing.T) {
	dir := isolate(t)
	_, url := newFakeAPI(t)
	if _, err := execute(t, url, "devices", "--config", filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestInvalidBaseURL(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "ftp://example.com", "devices"); err == nil {
		t.Fatal("expected error for ftp base URL")
	}
}
