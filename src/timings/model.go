// Package timings holds the in-memory build trace consumed by the graph renderers:
// compilation units, concurrency samples and CPU samples.
package timings

import (
	"fmt"
	"strconv"
)

// Mode is the kind of compiler invocation a unit represents.
type Mode uint8

const (
	ModeBuild Mode = iota
	ModeCheck
	ModeRunCustomBuild
	ModeDoc
	ModeDoctest
	ModeTest
)

var modeNames = [...]string{
	ModeBuild:          "build",
	ModeCheck:          "check",
	ModeRunCustomBuild: "run-custom-build",
	ModeDoc:            "doc",
	ModeDoctest:        "doctest",
	ModeTest:           "test",
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeBuild, ModeCheck, ModeRunCustomBuild, ModeDoc, ModeDoctest, ModeTest}
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode maps the trace's mode string to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeNames) {
		return nil, fmt.Errorf("invalid unit mode %d", m)
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Unit is one compiler invocation. Times are seconds relative to the build start.
type Unit struct {
	Index    int     `json:"i"`
	Name     string  `json:"name"`
	Target   string  `json:"target"`
	Mode     Mode    `json:"mode"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`

	// RmetaTime is the offset from Start at which metadata became available; nil when
	// the unit never produced metadata separately.
	RmetaTime          *float64 `json:"rmeta_time,omitempty"`
	UnlockedUnits      []int    `json:"unlocked_units"`
	UnlockedRmetaUnits []int    `json:"unlocked_rmeta_units"`
}

// HasRmeta reports whether the unit carries a metadata-ready time.
func (u *Unit) HasRmeta() bool { return u.RmetaTime != nil }

// CodegenTime is the part of the unit spent after metadata was ready.
func (u *Unit) CodegenTime() float64 {
	if u.RmetaTime == nil {
		return 0
	}
	return u.Duration - *u.RmetaTime
}

// Label is the text drawn inside the unit's block, e.g. "foo(lib) 1.23s".
func (u *Unit) Label() string {
	return u.Name + u.Target + " " + strconv.FormatFloat(u.Duration, 'f', 2, 64) + "s"
}

// ConcurrencySample partitions the unit population at time T.
type ConcurrencySample struct {
	T        float64 `json:"t"`
	Active   int     `json:"active"`
	Waiting  int     `json:"waiting"`
	Inactive int     `json:"inactive"`
}

// Max returns the largest of the three counts.
func (c ConcurrencySample) Max() int {
	m := c.Active
	if c.Waiting > m {
		m = c.Waiting
	}
	if c.Inactive > m {
		m = c.Inactive
	}
	return m
}

// CPUSample is a utilization percentage in [0,100] at time T.
type CPUSample struct {
	T     float64
	Usage float64
}

// Trace is a complete recorded build, resident in memory before rendering.
type Trace struct {
	Duration    float64             `json:"duration"`
	Units       []Unit              `json:"units"`
	Concurrency []ConcurrencySample `json:"concurrency"`
	CPU         []CPUSample         `json:"cpu_usage"`

	byIndex map[int]int
}

// Unit looks a unit up by its index.
func (t *Trace) Unit(index int) (*Unit, bool) {
	if t.byIndex == nil || len(t.byIndex) != len(t.Units) {
		t.reindex()
	}
	pos, ok := t.byIndex[index]
	if !ok {
		return nil, false
	}
	return &t.Units[pos], true
}

func (t *Trace) reindex() {
	t.byIndex = make(map[int]int, len(t.Units))
	for pos, u := range t.Units {
		t.byIndex[u.Index] = pos
	}
}

// MaxConcurrency is the largest count observed across all three concurrency series.
func (t *Trace) MaxConcurrency() int {
	m := 0
	for _, c := range t.Concurrency {
		if v := c.Max(); v > m {
			m = v
		}
	}
	return m
}

// Validate checks the invariants the renderers rely on.
func (t *Trace) Validate() error {
	if t.Duration < 0 {
		return fmt.Errorf("trace duration %v is negative", t.Duration)
	}
	t.reindex()
	if len(t.byIndex) != len(t.Units) {
		return fmt.Errorf("trace has duplicate unit indices")
	}
	for _, u := range t.Units {
		if u.Duration < 0 {
			return fmt.Errorf("unit %d (%s): negative duration %v", u.Index, u.Name, u.Duration)
		}
		if u.Start < 0 {
			return fmt.Errorf("unit %d (%s): negative start %v", u.Index, u.Name, u.Start)
		}
		if u.RmetaTime != nil && (*u.RmetaTime < 0 || *u.RmetaTime > u.Duration) {
			return fmt.Errorf("unit %d (%s): rmeta_time %v outside [0, %v]", u.Index, u.Name, *u.RmetaTime, u.Duration)
		}
		for _, n := range u.UnlockedUnits {
			if _, ok := t.byIndex[n]; !ok {
				return fmt.Errorf("unit %d (%s): unlocks unknown unit %d", u.Index, u.Name, n)
			}
		}
		for _, n := range u.UnlockedRmetaUnits {
			if _, ok := t.byIndex[n]; !ok {
				return fmt.Errorf("unit %d (%s): rmeta-unlocks unknown unit %d", u.Index, u.Name, n)
			}
		}
	}
	for i, c := range t.Concurrency {
		if c.Active < 0 || c.Waiting < 0 || c.Inactive < 0 {
			return fmt.Errorf("concurrency sample %d at t=%v has a negative count", i, c.T)
		}
	}
	for i, c := range t.CPU {
		if c.Usage < 0 || c.Usage > 100 {
			return fmt.Errorf("cpu sample %d at t=%v: usage %v outside [0,100]", i, c.T, c.Usage)
		}
	}
	return nil
}
