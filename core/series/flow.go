package series

import (
	"sort"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// FlowDelta is one row of per-stage deltas produced by a single task event.
// Deltas is indexed by schema.Stage.Index.
type FlowDelta struct {
	Kind       schema.PointKind
	OccurredAt time.Time
	SourceID   int64
	Deltas     [schema.NumStages]time.Duration
}

// FlowDeltas replays a task's estimate and stage history, attributing its
// estimate to the stage it sits in.
//
// Creation adds the original estimate to the initial stage. An estimate change
// adds its delta to the current stage. A transition moves the whole current
// estimate from the current stage to the target stage. Logged work does not
// appear in flow.
func FlowDeltas(h schema.TaskHistory) []FlowDelta {
	events := EventsFromHistory(h)
	stage := h.InitialStage()
	var estimate time.Duration

	out := make([]FlowDelta, 0, len(events))
	for _, e := range events {
		row := FlowDelta{Kind: e.Kind(), OccurredAt: e.OccurredAt(), SourceID: e.SourceID()}
		switch ev := e.(type) {
		case schema.TaskCreated:
			estimate = ev.OriginalEstimate
			row.add(stage, estimate)
		case schema.ScopeChange:
			estimate += ev.Delta
			row.add(stage, ev.Delta)
		case schema.StageChange:
			row.add(stage, -estimate)
			stage = ev.To
			row.add(stage, estimate)
		default:
			continue
		}
		out = append(out, row)
	}
	return out
}

func (r *FlowDelta) add(stage schema.Stage, d time.Duration) {
	if i := stage.Index(); i >= 0 {
		r.Deltas[i] += d
	}
}

// AggregateFlow merges the flow rows of many tasks and accumulates every stage
// independently. All stage series share the same instants, the leading one
// being the Initial point at cutoff.
func AggregateFlow(histories []schema.TaskHistory, cutoff time.Time) map[schema.Stage][]schema.DurationPoint {
	var rows []FlowDelta
	for _, h := range histories {
		rows = append(rows, FlowDeltas(h)...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return before(rows[i].OccurredAt, rows[i].Kind, rows[j].OccurredAt, rows[j].Kind)
	})

	out := make(map[schema.Stage][]schema.DurationPoint, schema.NumStages)
	for _, stage := range schema.AllStages {
		idx := stage.Index()
		deltas := make([]schema.DurationPoint, len(rows))
		for i, r := range rows {
			deltas[i] = schema.DurationPoint{
				Kind:       r.Kind,
				OccurredAt: r.OccurredAt,
				Value:      r.Deltas[idx],
				SourceID:   r.SourceID,
			}
		}
		out[stage] = MergeCutoff(Accumulate(deltas), cutoff)
	}
	return out
}
