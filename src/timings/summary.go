package timings

import "sort"

// Summary is the headline table of a timing report.
type Summary struct {
	Units         int
	ModeCounts    map[Mode]int
	Duration      float64
	UnitSeconds   float64 // sum of unit durations
	CodegenSecs   float64 // sum of post-metadata time over units with rmeta
	MaxActive     int
	MaxWaiting    int
	MaxInactive   int
	AvgCPU        float64 // time-weighted, percent
	Parallelism   float64 // UnitSeconds / Duration
	Slowest       []Unit
	RmetaUnits    int
	UnlockedEdges int
}

// Summarize computes the report summary. top bounds the Slowest list.
func Summarize(t *Trace, top int) Summary {
	s := Summary{ModeCounts: map[Mode]int{}, Duration: t.Duration, Units: len(t.Units)}
	for i := range t.Units {
		u := &t.Units[i]
		s.ModeCounts[u.Mode]++
		s.UnitSeconds += u.Duration
		if u.HasRmeta() {
			s.RmetaUnits++
			s.CodegenSecs += u.CodegenTime()
		}
		s.UnlockedEdges += len(u.UnlockedUnits) + len(u.UnlockedRmetaUnits)
	}
	for _, c := range t.Concurrency {
		if c.Active > s.MaxActive {
			s.MaxActive = c.Active
		}
		if c.Waiting > s.MaxWaiting {
			s.MaxWaiting = c.Waiting
		}
		if c.Inactive > s.MaxInactive {
			s.MaxInactive = c.Inactive
		}
	}
	s.AvgCPU = averageCPU(t.CPU)
	if t.Duration > 0 {
		s.Parallelism = s.UnitSeconds / t.Duration
	}
	if top > 0 {
		sorted := append([]Unit(nil), t.Units...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Duration > sorted[j].Duration })
		if len(sorted) > top {
			sorted = sorted[:top]
		}
		s.Slowest = sorted
	}
	return s
}

// averageCPU weights each sample by the time until the next one. A single sample (or
// samples sharing one timestamp) falls back to the plain mean.
func averageCPU(samples []CPUSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var weighted, span, plain float64
	for i, c := range samples {
		plain += c.Usage
		if i+1 < len(samples) {
			dt := samples[i+1].T - c.T
			if dt > 0 {
				weighted += c.Usage * dt
				span += dt
			}
		}
	}
	if span == 0 {
		return plain / float64(len(samples))
	}
	return weighted / span
}
