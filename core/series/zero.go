package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// FinishedTransitions keeps the stage changes that cross the boundary of the
// finished subset (Done, Deferred).
func FinishedTransitions(changes []schema.StageChange) []schema.StageChange {
	var out []schema.StageChange
	for _, c := range changes {
		if c.Pauses() || c.Resumes() {
			out = append(out, c)
		}
	}
	return out
}

// ZeroDeferred interleaves transitions into a task's running totals and zeroes
// the totals recorded while the task sat in a finished stage.
//
// The task starts paused when the origin of its first transition is finished.
// Each transition becomes a StageChange point valued at the underlying total
// just before it; the pause flag flips as transitions are processed. A task
// without transitions is returned unchanged.
func ZeroDeferred(totals []schema.DurationPoint, transitions []schema.StageChange) []schema.DurationPoint {
	if len(transitions) == 0 {
		return append([]schema.DurationPoint(nil), totals...)
	}

	paused := transitions[0].From.IsFinished()
	out := make([]schema.DurationPoint, 0, len(totals)+len(transitions))
	var underlying time.Duration
	i, j := 0, 0
	for i < len(totals) || j < len(transitions) {
		if j < len(transitions) && (i == len(totals) ||
			before(transitions[j].At, schema.StageChangePoint, totals[i].OccurredAt, totals[i].Kind)) {
			tr := transitions[j]
			j++
			out = append(out, schema.DurationPoint{
				Kind:       schema.StageChangePoint,
				OccurredAt: tr.At,
				Value:      underlying,
				SourceID:   tr.ChangeID,
			})
			switch {
			case tr.Pauses():
				paused = true
			case tr.Resumes():
				paused = false
			}
			continue
		}

		p := totals[i]
		i++
		underlying = p.Value
		if paused {
			p.Value = 0
		}
		out = append(out, p)
	}
	return out
}

// SettleTransitions adds a zero-valued point right after every transition into
// a finished stage, so that remaining work drops out of an aggregate series at
// the moment the task is parked. The extra point keeps the transition's
// instant and source.
func SettleTransitions(zeroed []schema.DurationPoint, transitions []schema.StageChange) []schema.DurationPoint {
	pauses := make(map[int64]bool, len(transitions))
	for _, tr := range transitions {
		if tr.Pauses() {
			pauses[tr.ChangeID] = true
		}
	}

	out := make([]schema.DurationPoint, 0, len(zeroed)+len(pauses))
	for _, p := range zeroed {
		out = append(out, p)
		if p.Kind == schema.StageChangePoint && pauses[p.SourceID] && p.Value != 0 {
			out = append(out, p.WithValue(0))
		}
	}
	return out
}
