package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/sadopc/screentime/internal/api"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != api.DefaultBaseURL {
		t.Fatalf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Rankings.Limit != 20 || cfg.Rankings.OrderBy != "duration" {
		t.Fatalf("unexpected rankings %+v", cfg.Rankings)
	}
	if cfg.Device != "" {
		t.Fatalf("expected no device, got %q", cfg.Device)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://stats.internal:9000/api/v1/screentime
  timeout: 3s
device: pixel
rankings:
  limit: 50
  order_by: launches
`)
	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://stats.internal:9000/api/v1/screentime" || cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected api %+v", cfg.API)
	}
	if cfg.Device != "pixel" || cfg.Rankings.Limit != 50 || cfg.Rankings.OrderBy != "launches" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "device: pixel\n")
	t.Setenv("SCREENTIME_DEVICE", "macbook")
	t.Setenv("SCREENTIME_API_BASE_URL", "http://env:1/api")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Device != "macbook" {
		t.Fatalf("env did not override device: %q", cfg.Device)
	}
	if cfg.API.BaseURL != "http://env:1/api" {
		t.Fatalf("env did not override base URL: %q", cfg.API.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	good := Config{API: APIConfig{BaseURL: "http://x"}, Rankings: RankingsConfig{Limit: 5, OrderBy: "notifications"}}
	if err := good.Validate(); err != nil {
		t.Fatal(err)
	}

	bad := []Config{
		{},
		{API: APIConfig{BaseURL: "http://x", Timeout: -1}},
		{API: APIConfig{BaseURL: "http://x"}, Rankings: RankingsConfig{Limit: -1}},
		{API: APIConfig{BaseURL: "http://x"}, Rankings: RankingsConfig{OrderBy: "alphabetical"}},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestInvalidOrderByInFile(t *testing.T) {
	path := writeConfig(t, "rankings:\n  order_by: name\n")
	if _, err := Load(viper.New(), path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestClientConfig(t *testing.T) {
	cfg := Config{API: APIConfig{BaseURL: "http://x", Timeout: time.Second}}
	cc := cfg.ClientConfig("screentime/test")
	if cc.BaseURL != "http://x" || cc.Timeout != time.Second || cc.UserAgent != "screentime/test" {
		t.Fatalf("unexpected client config %+v", cc)
	}
}

func TestDefaultDir(t *testing.T) {
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != "screentime" {
		t.Fatalf("unexpected dir %q", dir)
	}
}
