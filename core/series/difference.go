package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Difference is the inverse of Accumulate on unclamped input: each point
// carries its total minus the previous total, the first one its own total.
func Difference(totals []schema.DurationPoint) []schema.DurationPoint {
	out := make([]schema.DurationPoint, len(totals))
	var prev time.Duration
	for i, p := range totals {
		out[i] = p.WithValue(p.Value - prev)
		prev = p.Value
	}
	return out
}
