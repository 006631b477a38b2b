package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Accumulate turns deltas into running totals. The total is clamped at zero
// after every step, so a large negative delta floors the series at zero and
// later positive deltas grow it again from zero.
func Accumulate(deltas []schema.DurationPoint) []schema.DurationPoint {
	out := make([]schema.DurationPoint, len(deltas))
	var total time.Duration
	for i, d := range deltas {
		total = max(0, total+d.Value)
		out[i] = d.WithValue(total)
	}
	return out
}
