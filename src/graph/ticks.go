package graph

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrTickPlanning is returned when no tick step satisfies the bound within the probe
// limit (non-finite ranges, zero max ticks).
var ErrTickPlanning = errors.New("tick planning failed")

const maxTickProbes = 100

// RoundUp returns the smallest multiple of step that is >= n.
func RoundUp(n, step float64) float64 {
	if step <= 0 {
		return n
	}
	q := n / step
	c := math.Ceil(q)
	// n that is already an exact multiple must come back unchanged.
	if c*step < n {
		c++
	}
	return c * step
}

// SplitTicks picks a readable tick step for the range [0, n] using at most
// ceil(maxTicks) ticks. Candidates are 1, 2, 4 and 5, then 10, 20, 30, ...
// top is n rounded up to a multiple of step.
func SplitTicks(n, maxTicks float64) (step, top float64, err error) {
	limit := math.Ceil(maxTicks)
	for _, c := range []float64{1, 2, 4, 5} {
		if n <= limit*c {
			return c, RoundUp(n, c), nil
		}
	}
	step = 10
	for probes := 0; probes < maxTickProbes; probes++ {
		top = RoundUp(n, step)
		if top/step <= limit {
			return step, top, nil
		}
		step += 10
	}
	return 0, 0, fmt.Errorf("%w: n=%v maxTicks=%v after %d probes", ErrTickPlanning, n, maxTicks, maxTickProbes)
}

// tickMarks lists the ticks after zero, step..top, as go-chart ticks.
func tickMarks(step, top float64, label func(float64) string) []chart.Tick {
	if step <= 0 {
		return nil
	}
	count := int(math.Round(top / step))
	ticks := make([]chart.Tick, 0, count)
	for i := 1; i <= count; i++ {
		v := float64(i) * step
		ticks = append(ticks, chart.Tick{Value: v, Label: label(v)})
	}
	return ticks
}

func secondsLabel(v float64) string { return formatNumeric(v) + "s" }

// formatNumeric keeps integral tick values free of decimals.
func formatNumeric(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
