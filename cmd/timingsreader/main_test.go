package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iafilius/BuildTimings/src/timings"
)

func TestPrintSummary(t *testing.T) {
	rmeta := 1.0
	tr := &timings.Trace{
		Duration: 4,
		Units: []timings.Unit{
			{Index: 0, Name: "a", Target: "(lib)", Mode: timings.ModeBuild, Duration: 3, RmetaTime: &rmeta, UnlockedUnits: []int{1}},
			{Index: 1, Name: "b", Target: "(test)", Mode: timings.ModeTest, Start: 3, Duration: 1},
		},
		Concurrency: []timings.ConcurrencySample{{T: 0, Active: 1, Waiting: 1}},
		CPU:         []timings.CPUSample{{T: 0, Usage: 50}, {T: 4, Usage: 50}},
	}
	var buf bytes.Buffer
	printSummary(&buf, timings.Summarize(tr, 1))
	out := buf.String()
	for _, want := range []string{
		"Units: 2 (1 with metadata)",
		"  build: 1",
		"  test: 1",
		"Total time: 4s",
		"Unit time: 4s (codegen 2s)",
		"Parallelism: 1x",
		"Average CPU: 50%",
		"Dependency edges: 1",
		"  1st a(lib) 3.00s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2nd") {
		t.Fatalf("top=1 should list a single unit:\n%s", out)
	}
}
