package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// MergeCutoff collapses every total at or before cutoff into a single Initial
// point stamped at cutoff. Its value is the last collapsed total, or zero when
// nothing precedes the cutoff. Later points pass through unchanged.
//
// Applying MergeCutoff twice with the same cutoff is the same as applying it once.
func MergeCutoff(totals []schema.DurationPoint, cutoff time.Time) []schema.DurationPoint {
	initial := schema.DurationPoint{Kind: schema.InitialPoint, OccurredAt: cutoff}
	out := make([]schema.DurationPoint, 1, len(totals)+1)
	for _, p := range totals {
		if !p.OccurredAt.After(cutoff) {
			initial.Value = p.Value
			continue
		}
		out = append(out, p)
	}
	out[0] = initial
	return out
}
