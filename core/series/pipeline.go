package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// TaskDeltas is the per-task burndown: remaining-time deltas with the task's
// finished periods zeroed. The series starts with the task's creation and is
// never merged against a cutoff.
func TaskDeltas(h schema.TaskHistory) []schema.DurationPoint {
	events := EventsFromHistory(h)
	transitions := FinishedTransitions(StageChanges(events))
	totals := Accumulate(ExtractDeltas(events, schema.BurndownMode))
	return Difference(ZeroDeferred(totals, transitions))
}

// Burndown aggregates the remaining work of many tasks into one running total
// starting at cutoff. Parked tasks drop out at their transition into a
// finished stage and come back when reopened.
func Burndown(histories []schema.TaskHistory, cutoff time.Time) []schema.DurationPoint {
	perTask := make([][]schema.DurationPoint, 0, len(histories))
	for _, h := range histories {
		events := EventsFromHistory(h)
		transitions := FinishedTransitions(StageChanges(events))
		totals := Accumulate(ExtractDeltas(events, schema.BurndownMode))
		zeroed := SettleTransitions(ZeroDeferred(totals, transitions), transitions)
		perTask = append(perTask, Difference(zeroed))
	}
	return MergeCutoff(Accumulate(Merge(perTask...)), cutoff)
}

// Burnup aggregates logged work into a completed series and, separately, the
// total scope (original estimates plus estimate changes). Both start at cutoff.
func Burnup(histories []schema.TaskHistory, cutoff time.Time) (completed, scope []schema.DurationPoint) {
	perTask := make([][]schema.DurationPoint, 0, len(histories))
	for _, h := range histories {
		perTask = append(perTask, ExtractDeltas(EventsFromHistory(h), schema.BurnupMode))
	}
	merged := Merge(perTask...)

	completed = MergeCutoff(Accumulate(Filter(merged, schema.WorkLoggedPoint)), cutoff)
	scope = MergeCutoff(Accumulate(Filter(merged, schema.NewTaskPoint, schema.ScopeChangePoint)), cutoff)
	return completed, scope
}
