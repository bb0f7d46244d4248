package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/iafilius/BuildTimings/src/logging"
	"github.com/iafilius/BuildTimings/src/timings"
)

func main() {
	var file string
	var top int
	var logLevel string
	flag.StringVar(&file, "file", "cargo-timing.json", "Path to the timing trace JSON")
	flag.IntVar(&top, "top", 10, "Number of slowest units to list")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	if err := logging.Configure(logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	tr, err := timings.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	printSummary(os.Stdout, timings.Summarize(tr, top))
}

func printSummary(w io.Writer, s timings.Summary) {
	fmt.Fprintf(w, "Units: %s (%s with metadata)\n", humanize.Comma(int64(s.Units)), humanize.Comma(int64(s.RmetaUnits)))
	for _, m := range timings.Modes() {
		if n := s.ModeCounts[m]; n > 0 {
			fmt.Fprintf(w, "  %s: %s\n", m, humanize.Comma(int64(n)))
		}
	}
	fmt.Fprintf(w, "Total time: %ss\n", humanize.FtoaWithDigits(s.Duration, 2))
	fmt.Fprintf(w, "Unit time: %ss (codegen %ss)\n", humanize.FtoaWithDigits(s.UnitSeconds, 2), humanize.FtoaWithDigits(s.CodegenSecs, 2))
	fmt.Fprintf(w, "Parallelism: %sx\n", humanize.FtoaWithDigits(s.Parallelism, 2))
	fmt.Fprintf(w, "Max concurrency: %d active, %d waiting, %d inactive\n", s.MaxActive, s.MaxWaiting, s.MaxInactive)
	fmt.Fprintf(w, "Average CPU: %s%%\n", humanize.FtoaWithDigits(s.AvgCPU, 1))
	fmt.Fprintf(w, "Dependency edges: %s\n", humanize.Comma(int64(s.UnlockedEdges)))
	if len(s.Slowest) == 0 {
		return
	}
	fmt.Fprintln(w, "Slowest units:")
	for i := range s.Slowest {
		u := &s.Slowest[i]
		fmt.Fprintf(w, "  %s %s\n", humanize.Ordinal(i+1), u.Label())
	}
}
