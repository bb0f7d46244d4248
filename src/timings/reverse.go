package timings

// ReverseDeps maps a unit index to the unit that unlocked it. When several units unlock
// the same successor only the last one in trace order is kept; the viewer highlights a
// single incoming edge per unit.
type ReverseDeps struct {
	Unlock map[int]int // successor -> predecessor, full completion
	Rmeta  map[int]int // successor -> predecessor, metadata ready
}

// BuildReverseDeps walks the unit list once, in order.
func BuildReverseDeps(units []Unit) ReverseDeps {
	r := ReverseDeps{Unlock: map[int]int{}, Rmeta: map[int]int{}}
	for _, u := range units {
		for _, n := range u.UnlockedUnits {
			r.Unlock[n] = u.Index
		}
		for _, n := range u.UnlockedRmetaUnits {
			r.Rmeta[n] = u.Index
		}
	}
	return r
}
