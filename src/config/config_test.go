package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
trace: build/timings.json
render:
  min_unit_time: 0.5
  scale: 35
logging:
  level: debug
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Trace != "build/timings.json" || cfg.Render.MinUnitTime != 0.5 || cfg.Render.Scale != 35 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Render.PixelRatio != 1 || !cfg.Render.ShowHints || cfg.Export.ScreenshotsDir != "screenshots" {
		t.Fatalf("absent keys should keep defaults: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level: %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"negative filter": "render:\n  min_unit_time: -1\n",
		"zero scale":      "render:\n  scale: 0\n",
		"bad ratio":       "render:\n  pixel_ratio: -2\n",
		"bad level":       "logging:\n  level: loud\n",
		"not yaml":        "render: [\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestTraceSetOnlyWhenFileNamesTrace(t *testing.T) {
	cfg, err := Load(writeConfig(t, "render:\n  scale: 40\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TraceSet() {
		t.Fatalf("file without a trace key reported a trace")
	}
	if cfg.Trace != Default().Trace {
		t.Fatalf("trace should keep its default, got %q", cfg.Trace)
	}
	cfg, err = Load(writeConfig(t, "trace: target/cargo-timings/cargo-timing.json\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.TraceSet() {
		t.Fatalf("trace key not detected")
	}
	if Default().TraceSet() {
		t.Fatalf("defaults never name a trace explicitly")
	}
}
