package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := output.Writer()
	savedFlags := output.Flags()
	output.SetOutput(&buf)
	output.SetFlags(0)
	t.Cleanup(func() {
		output.SetOutput(saved)
		output.SetFlags(savedFlags)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLog(t)

	msg := "unit build_script(build) 100% done in 1.23s"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "[INFO] unit build_script(build) 100% done") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	if err := Configure("warn"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)
	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("lines below warn should be dropped: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") || !strings.Contains(out, "[ERROR] error 4") {
		t.Fatalf("missing warn/error lines: %q", out)
	}
}

func TestConfigureUnknownKeepsLevel(t *testing.T) {
	captureLog(t)
	SetLevel(LevelDebug)
	if err := Configure("verbose"); err == nil {
		t.Fatalf("verbose is not a level")
	}
	if CurrentLevel() != LevelDebug {
		t.Fatalf("level changed on unknown name: %v", CurrentLevel())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, " INFO": LevelInfo, "Warning ": LevelWarn, "warn": LevelWarn, "error": LevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if Level(9).String() != "Level(9)" {
		t.Fatalf("out-of-range level name: %s", Level(9))
	}
}

func TestTimeTrackOnlyAtDebug(t *testing.T) {
	buf := captureLog(t)
	TimeTrack(time.Now(), "layout")
	if buf.Len() != 0 {
		t.Fatalf("TimeTrack logged at info: %q", buf.String())
	}
	SetLevel(LevelDebug)
	TimeTrack(time.Now(), "layout")
	if !strings.Contains(buf.String(), "[DEBUG] layout took ") {
		t.Fatalf("missing phase timing: %q", buf.String())
	}
}
