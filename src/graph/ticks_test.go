package graph

import (
	"errors"
	"math"
	"testing"
)

func TestSplitTicksExample(t *testing.T) {
	step, top, err := SplitTicks(23, 5)
	if err != nil {
		t.Fatalf("SplitTicks: %v", err)
	}
	if step != 5 || top != 25 {
		t.Fatalf("SplitTicks(23,5) = (%v,%v), want (5,25)", step, top)
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct{ n, step, want float64 }{
		{17, 4, 20},
		{20, 4, 20},
		{0, 10, 0},
		{0.5, 1, 1},
		{101, 10, 110},
	}
	for _, c := range cases {
		if got := RoundUp(c.n, c.step); got != c.want {
			t.Fatalf("RoundUp(%v,%v) = %v, want %v", c.n, c.step, got, c.want)
		}
		if again := RoundUp(RoundUp(c.n, c.step), c.step); again != RoundUp(c.n, c.step) {
			t.Fatalf("RoundUp not idempotent for (%v,%v): %v", c.n, c.step, again)
		}
	}
}

// candidateSteps reproduces the documented candidate order up to limit.
func candidateSteps(limit float64) []float64 {
	out := []float64{1, 2, 4, 5}
	for s := 10.0; s <= limit; s += 10 {
		out = append(out, s)
	}
	return out
}

func TestSplitTicksProperties(t *testing.T) {
	for _, maxTicks := range []float64{0.5, 1, 2.3, 5, 7, 10, 81.9} {
		for n := 0.0; n <= 500; n += 3.7 {
			step, top, err := SplitTicks(n, maxTicks)
			if err != nil {
				t.Fatalf("SplitTicks(%v,%v): %v", n, maxTicks, err)
			}
			limit := math.Ceil(maxTicks)
			if top < n {
				t.Fatalf("top %v < n %v (maxTicks %v)", top, n, maxTicks)
			}
			if math.Mod(top, step) != 0 {
				t.Fatalf("top %v not a multiple of step %v", top, step)
			}
			if top/step > limit {
				t.Fatalf("too many ticks: %v/%v > %v", top, step, limit)
			}
			for _, c := range candidateSteps(step) {
				if c >= step {
					break
				}
				if RoundUp(n, c)/c <= limit {
					t.Fatalf("smaller step %v also fits n=%v maxTicks=%v (got %v)", c, n, maxTicks, step)
				}
			}
		}
	}
}

func TestSplitTicksDegenerateInputs(t *testing.T) {
	cases := []struct {
		name        string
		n, maxTicks float64
	}{
		{"nan range", math.NaN(), 5},
		{"infinite range", math.Inf(1), 5},
		{"zero max ticks", 5, 0},
		{"nan max ticks", 5, math.NaN()},
		{"range past probe bound", 1e6, 1},
	}
	for _, c := range cases {
		_, _, err := SplitTicks(c.n, c.maxTicks)
		if !errors.Is(err, ErrTickPlanning) {
			t.Fatalf("%s: expected ErrTickPlanning, got %v", c.name, err)
		}
	}
	step, top, err := SplitTicks(0, 0)
	if err != nil || step != 1 || top != 0 {
		t.Fatalf("empty range should plan trivially: (%v,%v,%v)", step, top, err)
	}
}

func TestTickMarksLabels(t *testing.T) {
	ticks := tickMarks(5, 25, secondsLabel)
	if len(ticks) != 5 {
		t.Fatalf("expected 5 ticks, got %d", len(ticks))
	}
	if ticks[0].Value != 5 || ticks[0].Label != "5s" || ticks[4].Label != "25s" {
		t.Fatalf("unexpected ticks: %+v", ticks)
	}
	if got := formatNumeric(2.5); got != "2.50" {
		t.Fatalf("formatNumeric(2.5) = %q", got)
	}
}
