package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// ExtractDeltas maps ordered task events to signed time deltas.
//
// Burndown: creation adds the original estimate, a scope change adds its
// delta and logged work subtracts its duration. Burnup adds logged work.
// Stage changes never produce a delta point.
func ExtractDeltas(events []schema.Event, mode schema.ChartMode) []schema.DurationPoint {
	sign := -1
	if mode == schema.BurnupMode {
		sign = 1
	}

	out := make([]schema.DurationPoint, 0, len(events))
	for _, e := range events {
		p := schema.DurationPoint{Kind: e.Kind(), OccurredAt: e.OccurredAt(), SourceID: e.SourceID()}
		switch ev := e.(type) {
		case schema.TaskCreated:
			p.Value = ev.OriginalEstimate
		case schema.ScopeChange:
			p.Value = ev.Delta
		case schema.WorkLogged:
			p.Value = ev.Duration * time.Duration(sign)
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}
