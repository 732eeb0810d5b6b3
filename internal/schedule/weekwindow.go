// Package schedule maps epoch timestamps onto fantasy week ordinals using the
// week start boundaries reported by the platform scoreboard.
package schedule

import "sort"

const lastWeekWindowMillis = 8 * 24 * 60 * 60 * 1000

// WeekWindowResolver is an immutable lookup table from epoch milliseconds to
// week ordinals. A week's window ends one millisecond before the next known
// week starts; the final known week is given an eight day window.
type WeekWindowResolver struct {
	weeks  []int
	starts map[int]int64
}

func NewWeekWindowResolver(startsByWeek map[int]int64) *WeekWindowResolver {
	weeks := make([]int, 0, len(startsByWeek))
	starts := make(map[int]int64, len(startsByWeek))
	for week, start := range startsByWeek {
		weeks = append(weeks, week)
		starts[week] = start
	}
	sort.Ints(weeks)
	return &WeekWindowResolver{weeks: weeks, starts: starts}
}

func (r *WeekWindowResolver) Empty() bool {
	return len(r.weeks) == 0
}

// Window reports the [start, end] boundary for a known week.
func (r *WeekWindowResolver) Window(week int) (start, end int64, ok bool) {
	start, ok = r.starts[week]
	if !ok {
		return 0, 0, false
	}
	for i, w := range r.weeks {
		if w != week {
			continue
		}
		if i+1 < len(r.weeks) {
			return start, r.starts[r.weeks[i+1]] - 1, true
		}
		return start, start + lastWeekWindowMillis, true
	}
	return 0, 0, false
}

// MapEpoch returns the week whose window contains the timestamp, scanning
// known windows in ascending week order.
func (r *WeekWindowResolver) MapEpoch(timestampMillis int64) (int, bool) {
	for _, week := range r.weeks {
		start, end, _ := r.Window(week)
		if start <= timestampMillis && timestampMillis <= end {
			return week, true
		}
	}
	return 0, false
}

// EarliestStart reports the start of the first known week window.
func (r *WeekWindowResolver) EarliestStart() (int64, bool) {
	if len(r.weeks) == 0 {
		return 0, false
	}
	return r.starts[r.weeks[0]], true
}

func (r *WeekWindowResolver) Weeks() []int {
	out := make([]int, len(r.weeks))
	copy(out, r.weeks)
	return out
}
