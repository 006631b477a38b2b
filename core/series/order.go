package series

import (
	"sort"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// before is the total order used everywhere: instant first, then kind priority.
func before(at time.Time, kind schema.PointKind, otherAt time.Time, otherKind schema.PointKind) bool {
	if !at.Equal(otherAt) {
		return at.Before(otherAt)
	}
	return kind < otherKind
}

// Merge interleaves several ordered series into one. Points that tie on
// instant and kind keep the order of the input series.
func Merge(all ...[]schema.DurationPoint) []schema.DurationPoint {
	var n int
	for _, s := range all {
		n += len(s)
	}
	out := make([]schema.DurationPoint, 0, n)
	for _, s := range all {
		out = append(out, s...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return before(out[i].OccurredAt, out[i].Kind, out[j].OccurredAt, out[j].Kind)
	})
	return out
}

// Filter returns the points whose kind is one of kinds.
func Filter(points []schema.DurationPoint, kinds ...schema.PointKind) []schema.DurationPoint {
	out := make([]schema.DurationPoint, 0, len(points))
	for _, p := range points {
		for _, k := range kinds {
			if p.Kind == k {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
