package graph

import "github.com/iafilius/BuildTimings/src/timings"

func f64(v float64) *float64 { return &v }

// sampleTrace has four units on a 20s build:
//
//	0 a  build             0s..10s  rmeta at 4s, unlocks 2, rmeta-unlocks 1
//	1 b  check             4s..4.5s unlocks 2
//	2 c  run-custom-build 10s..15s
//	3 d  test              0s..0s   zero duration
func sampleTrace() *timings.Trace {
	return &timings.Trace{
		Duration: 20,
		Units: []timings.Unit{
			{Index: 0, Name: "a", Target: "(lib)", Mode: timings.ModeBuild, Start: 0, Duration: 10, RmetaTime: f64(4), UnlockedUnits: []int{2}, UnlockedRmetaUnits: []int{1}},
			{Index: 1, Name: "b", Target: "(lib)", Mode: timings.ModeCheck, Start: 4, Duration: 0.5, UnlockedUnits: []int{2}},
			{Index: 2, Name: "c", Target: " build script", Mode: timings.ModeRunCustomBuild, Start: 10, Duration: 5},
			{Index: 3, Name: "d", Target: "(test)", Mode: timings.ModeTest, Start: 0, Duration: 0},
		},
		Concurrency: []timings.ConcurrencySample{
			{T: 0, Active: 1, Waiting: 2, Inactive: 0},
			{T: 2, Active: 2, Waiting: 0, Inactive: 1},
			{T: 5, Active: 1, Waiting: 0, Inactive: 0},
		},
		CPU: []timings.CPUSample{{T: 0, Usage: 50}, {T: 2, Usage: 100}, {T: 10, Usage: 25}},
	}
}

var defaultTestOptions = PipelineOptions{MinDuration: 0, Scale: 10, PixelRatio: 1}
