package series

import (
	"sort"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// EventsFromHistory flattens a task history into a chronologically ordered event list.
//
// Events sharing an instant are ordered by kind priority (creation, scope
// change, stage change, work logged) and otherwise keep extraction order.
func EventsFromHistory(h schema.TaskHistory) []schema.Event {
	events := make([]schema.Event, 0, 1+len(h.EstimateChanges)+len(h.StageChanges)+len(h.Worklogs))
	events = append(events, schema.TaskCreated{
		At:               h.Task.CreatedAt,
		OriginalEstimate: h.Task.OriginalEstimate,
		TaskID:           h.Task.ID,
	})
	for _, c := range h.EstimateChanges {
		events = append(events, schema.ScopeChange{At: c.At, Delta: c.New - c.Old, ChangeID: c.ID})
	}
	for _, c := range h.StageChanges {
		events = append(events, c)
	}
	for _, w := range h.Worklogs {
		events = append(events, schema.WorkLogged{At: w.OccurredAt, Duration: w.Duration, WorklogID: w.ID})
	}
	SortEvents(events)
	return events
}

// SortEvents orders events in place by instant, then kind priority, keeping input order otherwise.
func SortEvents(events []schema.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return before(events[i].OccurredAt(), events[i].Kind(), events[j].OccurredAt(), events[j].Kind())
	})
}

// StageChanges returns the stage-change events of a list, in order.
func StageChanges(events []schema.Event) []schema.StageChange {
	var out []schema.StageChange
	for _, e := range events {
		if sc, ok := e.(schema.StageChange); ok {
			out = append(out, sc)
		}
	}
	return out
}
