package graph

import "math"

// MaxGraphWidth caps the plotted width so very long builds or large scale factors do
// not allocate enormous surfaces.
const MaxGraphWidth = 4096

// TimeScale maps seconds since build start to pixels along the X axis.
type TimeScale struct {
	Duration  float64 // total build span, seconds
	Width     float64 // graph width in pixels, after the cap
	PxPerSec  float64 // floor(Width / Duration)
	UserScale float64
}

// NewTimeScale derives the X mapping from the build span and the user scale factor
// (pixels per second before the cap). A zero duration yields a zero-width scale.
func NewTimeScale(duration, userScale float64) TimeScale {
	s := TimeScale{Duration: duration, UserScale: userScale}
	s.Width = math.Min(userScale*duration, MaxGraphWidth)
	if s.Width < 0 {
		s.Width = 0
	}
	if duration > 0 {
		s.PxPerSec = math.Floor(s.Width / duration)
	}
	return s
}

// X maps a time offset to a pixel offset from the plot origin.
func (s TimeScale) X(t float64) float64 { return s.PxPerSec * t }

// ValueScale maps a count to a Y pixel with the origin at the top.
type ValueScale struct {
	Top    float64
	Height float64
	Max    float64
}

// NewValueScale reports ok=false when max is zero; callers skip the plot.
func NewValueScale(top, height, max float64) (ValueScale, bool) {
	if max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return ValueScale{}, false
	}
	return ValueScale{Top: top, Height: height, Max: max}, true
}

// Y maps a value to a pixel offset from the plot origin.
func (s ValueScale) Y(v float64) float64 { return s.Top + s.Height*(1-v/s.Max) }
