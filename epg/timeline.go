package epg

import (
	"sort"
)

// Timeline answers point-in-time questions over one channel's programs:
// what is playing now, what plays next and how far along the current
// program is.
//
// Guide sources are supposed to deliver programs sorted ascending by
// start with non-overlapping intervals, but that was never guaranteed,
// so the constructor sorts defensively. Overlapping intervals are a
// source data-quality problem; the first match in order wins.
type Timeline struct {
	programs []Program
}

// NewTimeline builds a Timeline over the given programs, sorting them
// ascending by start time. The input slice is not modified.
func NewTimeline(programs []Program) Timeline {
	sorted := make([]Program, len(programs))
	copy(sorted, programs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return Timeline{programs: sorted}
}

// Programs returns the programs in ascending start order
func (t Timeline) Programs() []Program {
	return t.programs
}

// Len returns the number of programs
func (t Timeline) Len() int {
	return len(t.programs)
}

// Current returns the program on air at the given time, if any
func (t Timeline) Current(now int64) (Program, bool) {
	for _, p := range t.programs {
		if p.Contains(now) {
			return p, true
		}
	}
	return Program{}, false
}

// Next returns the program with the smallest start strictly after the
// given time, if any
func (t Timeline) Next(now int64) (Program, bool) {
	idx := sort.Search(len(t.programs), func(i int) bool {
		return t.programs[i].Start > now
	})
	if idx == len(t.programs) {
		return Program{}, false
	}
	return t.programs[idx], true
}
