package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

var day0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// at returns day0 shifted by n days.
func at(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func values(points []schema.DurationPoint) []time.Duration {
	out := make([]time.Duration, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

func kinds(points []schema.DurationPoint) []schema.PointKind {
	out := make([]schema.PointKind, len(points))
	for i, p := range points {
		out[i] = p.Kind
	}
	return out
}

func deltas(vs ...float64) []schema.DurationPoint {
	out := make([]schema.DurationPoint, len(vs))
	for i, v := range vs {
		out[i] = schema.DurationPoint{Kind: schema.ScopeChangePoint, OccurredAt: at(i), Value: hours(v)}
	}
	return out
}

// estimateHistory is the example scenario: 2h estimate raised to 5h, then two 1h worklogs.
func estimateHistory() schema.TaskHistory {
	return schema.TaskHistory{
		Task: schema.Task{ID: 1, Name: "login page", Stage: schema.StageInProgress, OriginalEstimate: 2 * time.Hour, CreatedAt: at(0)},
		EstimateChanges: []schema.EstimateChange{
			{ID: 10, At: at(1), Old: 2 * time.Hour, New: 5 * time.Hour},
		},
		Worklogs: []schema.Worklog{
			{ID: 20, TaskID: 1, Duration: time.Hour, OccurredAt: at(2)},
			{ID: 21, TaskID: 1, Duration: time.Hour, OccurredAt: at(3)},
		},
	}
}

// parkedHistory is created with 4h, worked down to 1h, parked in Done while
// re-estimated up and back down, then reopened and worked on.
func parkedHistory() schema.TaskHistory {
	return schema.TaskHistory{
		Task: schema.Task{ID: 2, Stage: schema.StageInProgress, OriginalEstimate: 4 * time.Hour, CreatedAt: at(0)},
		EstimateChanges: []schema.EstimateChange{
			{ID: 10, At: at(3), Old: 4 * time.Hour, New: 6 * time.Hour},
			{ID: 11, At: at(4), Old: 6 * time.Hour, New: 4 * time.Hour},
		},
		StageChanges: []schema.StageChange{
			{At: at(2), From: schema.StageInProgress, To: schema.StageDone, ChangeID: 30},
			{At: at(5), From: schema.StageDone, To: schema.StageInProgress, ChangeID: 31},
		},
		Worklogs: []schema.Worklog{
			{ID: 20, Duration: 3 * time.Hour, OccurredAt: at(1)},
			{ID: 21, Duration: 30 * time.Minute, OccurredAt: at(6)},
		},
	}
}

func TestEventsFromHistoryOrdering(t *testing.T) {
	h := schema.TaskHistory{
		Task: schema.Task{ID: 1, OriginalEstimate: time.Hour, CreatedAt: at(0)},
		EstimateChanges: []schema.EstimateChange{
			{ID: 10, At: at(1), Old: time.Hour, New: 3 * time.Hour},
		},
		StageChanges: []schema.StageChange{
			{At: at(1), From: schema.StageTodo, To: schema.StageInProgress, ChangeID: 11},
		},
		Worklogs: []schema.Worklog{
			{ID: 20, Duration: time.Hour, OccurredAt: at(0)},
			{ID: 21, Duration: time.Hour, OccurredAt: at(1)},
		},
	}

	events := EventsFromHistory(h)
	require.Len(t, events, 5)

	got := make([]int64, len(events))
	for i, e := range events {
		got[i] = e.SourceID()
	}
	assert.Equal(t, []int64{1, 20, 10, 11, 21}, got)

	sc := events[2].(schema.ScopeChange)
	assert.Equal(t, 2*time.Hour, sc.Delta)
	assert.Len(t, StageChanges(events), 1)
}

func TestExtractDeltasEndToEnd(t *testing.T) {
	events := EventsFromHistory(estimateHistory())

	burndown := ExtractDeltas(events, schema.BurndownMode)
	assert.Equal(t, []time.Duration{2 * time.Hour, 3 * time.Hour, -time.Hour, -time.Hour}, values(burndown))
	assert.Equal(t, []schema.PointKind{
		schema.NewTaskPoint, schema.ScopeChangePoint, schema.WorkLoggedPoint, schema.WorkLoggedPoint,
	}, kinds(burndown))
	assert.Equal(t, int64(1), burndown[0].SourceID)
	assert.Equal(t, int64(21), burndown[3].SourceID)

	totals := Accumulate(burndown)
	assert.Equal(t, []time.Duration{2 * time.Hour, 5 * time.Hour, 4 * time.Hour, 3 * time.Hour}, values(totals))

	burnup := ExtractDeltas(events, schema.BurnupMode)
	assert.Equal(t, time.Hour, burnup[2].Value)
}

func TestExtractDeltasWithoutHistory(t *testing.T) {
	h := schema.TaskHistory{Task: schema.Task{ID: 5, OriginalEstimate: 90 * time.Minute, CreatedAt: at(0)}}

	points := ExtractDeltas(EventsFromHistory(h), schema.BurndownMode)
	require.Len(t, points, 1)
	assert.Equal(t, schema.NewTaskPoint, points[0].Kind)
	assert.Equal(t, 90*time.Minute, points[0].Value)
}

func TestExtractDeltasSkipsStageChanges(t *testing.T) {
	points := ExtractDeltas(EventsFromHistory(parkedHistory()), schema.BurndownMode)
	for _, p := range points {
		assert.NotEqual(t, schema.StageChangePoint, p.Kind)
	}
	assert.Len(t, points, 5)
}

func TestAccumulateClampThenContinue(t *testing.T) {
	totals := Accumulate(deltas(5, -10, 3))
	assert.Equal(t, []time.Duration{5 * time.Hour, 0, 3 * time.Hour}, values(totals))
}

func TestAccumulateKeepsMetadata(t *testing.T) {
	in := deltas(1, 2)
	in[1].SourceID = 9
	out := Accumulate(in)

	assert.Equal(t, in[1].OccurredAt, out[1].OccurredAt)
	assert.Equal(t, int64(9), out[1].SourceID)
	assert.Equal(t, time.Hour, in[0].Value, "input must not be mutated")
	assert.Empty(t, Accumulate(nil))
}

func FuzzAccumulateNonNegative(f *testing.F) {
	f.Add([]byte{5, 246, 3})
	f.Add([]byte{0, 128, 127, 200})
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, raw []byte) {
		in := make([]schema.DurationPoint, len(raw))
		for i, b := range raw {
			in[i] = schema.DurationPoint{Kind: schema.WorkLoggedPoint, OccurredAt: at(i), Value: time.Duration(int8(b)) * time.Hour}
		}
		out := Accumulate(in)
		require.Len(t, out, len(in))
		for _, p := range out {
			if p.Value < 0 {
				t.Fatalf("negative total %v for deltas %v", p.Value, raw)
			}
		}
	})
}

func TestDifferenceRoundTrip(t *testing.T) {
	totals := Accumulate(deltas(2, 3, -1, -1))
	diffs := Difference(totals)

	assert.Equal(t, []time.Duration{2 * time.Hour, 3 * time.Hour, -time.Hour, -time.Hour}, values(diffs))
	assert.Equal(t, totals, Accumulate(diffs))
}

func TestDifferenceDoesNotUndoClamping(t *testing.T) {
	in := deltas(5, -10, 3)
	recovered := Difference(Accumulate(in))

	assert.Equal(t, []time.Duration{5 * time.Hour, -5 * time.Hour, 3 * time.Hour}, values(recovered))
	assert.NotEqual(t, values(in), values(recovered))
}

func TestMergeCutoff(t *testing.T) {
	totals := Accumulate(deltas(2, 3, -1, -1))

	tests := []struct {
		name   string
		cutoff time.Time
		want   []time.Duration
	}{
		{"before everything", at(-1), []time.Duration{0, 2 * time.Hour, 5 * time.Hour, 4 * time.Hour, 3 * time.Hour}},
		{"inclusive of equal instant", at(1), []time.Duration{5 * time.Hour, 4 * time.Hour, 3 * time.Hour}},
		{"after everything", at(10), []time.Duration{3 * time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeCutoff(totals, tt.cutoff)
			assert.Equal(t, tt.want, values(got))
			assert.Equal(t, schema.InitialPoint, got[0].Kind)
			assert.Equal(t, tt.cutoff, got[0].OccurredAt)
			assert.Zero(t, got[0].SourceID)
		})
	}
}

func TestMergeCutoffIdempotent(t *testing.T) {
	totals := Accumulate(deltas(2, 3, -1, -1))
	for _, cutoff := range []time.Time{at(-1), at(0), at(2), at(7)} {
		once := MergeCutoff(totals, cutoff)
		assert.Equal(t, once, MergeCutoff(once, cutoff), "cutoff %s", cutoff)
	}
}

func TestMergeCutoffEmpty(t *testing.T) {
	got := MergeCutoff(nil, at(0))
	require.Len(t, got, 1)
	assert.Equal(t, schema.DurationPoint{Kind: schema.InitialPoint, OccurredAt: at(0)}, got[0])
}

func TestZeroDeferredRoundTrip(t *testing.T) {
	h := parkedHistory()
	events := EventsFromHistory(h)
	totals := Accumulate(ExtractDeltas(events, schema.BurndownMode))
	require.Equal(t, []time.Duration{4 * time.Hour, time.Hour, 3 * time.Hour, time.Hour, 30 * time.Minute}, values(totals))

	zeroed := ZeroDeferred(totals, FinishedTransitions(StageChanges(events)))

	assert.Equal(t, []time.Duration{4 * time.Hour, time.Hour, time.Hour, 0, 0, time.Hour, 30 * time.Minute}, values(zeroed))
	assert.Equal(t, []schema.PointKind{
		schema.NewTaskPoint,
		schema.WorkLoggedPoint,
		schema.StageChangePoint,
		schema.ScopeChangePoint,
		schema.ScopeChangePoint,
		schema.StageChangePoint,
		schema.WorkLoggedPoint,
	}, kinds(zeroed))
	assert.Equal(t, int64(30), zeroed[2].SourceID)
	assert.Equal(t, at(5), zeroed[5].OccurredAt)
}

func TestZeroDeferredTrailingPause(t *testing.T) {
	totals := Accumulate(deltas(4, -1, -1))
	transitions := []schema.StageChange{{At: at(0).Add(time.Hour), From: schema.StageInProgress, To: schema.StageDeferred, ChangeID: 7}}

	zeroed := ZeroDeferred(totals, transitions)
	assert.Equal(t, []time.Duration{4 * time.Hour, 4 * time.Hour, 0, 0}, values(zeroed))
}

func TestZeroDeferredStartsPaused(t *testing.T) {
	totals := Accumulate(deltas(4, -1, -1))
	transitions := []schema.StageChange{{At: at(1).Add(time.Hour), From: schema.StageDone, To: schema.StageTodo, ChangeID: 7}}

	zeroed := ZeroDeferred(totals, transitions)
	assert.Equal(t, []time.Duration{0, 0, 3 * time.Hour, 2 * time.Hour}, values(zeroed))
}

func TestZeroDeferredSameInstant(t *testing.T) {
	totals := Accumulate([]schema.DurationPoint{
		{Kind: schema.NewTaskPoint, OccurredAt: at(0), Value: 4 * time.Hour},
		{Kind: schema.ScopeChangePoint, OccurredAt: at(1), Value: time.Hour},
		{Kind: schema.WorkLoggedPoint, OccurredAt: at(1), Value: -time.Hour},
	})
	transitions := []schema.StageChange{{At: at(1), From: schema.StageUnderReview, To: schema.StageDone, ChangeID: 3}}

	zeroed := ZeroDeferred(totals, transitions)
	assert.Equal(t, []schema.PointKind{
		schema.NewTaskPoint, schema.ScopeChangePoint, schema.StageChangePoint, schema.WorkLoggedPoint,
	}, kinds(zeroed))
	assert.Equal(t, []time.Duration{4 * time.Hour, 5 * time.Hour, 5 * time.Hour, 0}, values(zeroed))
}

func TestZeroDeferredResumeInstant(t *testing.T) {
	totals := Accumulate([]schema.DurationPoint{
		{Kind: schema.NewTaskPoint, OccurredAt: at(0), Value: 4 * time.Hour},
		{Kind: schema.ScopeChangePoint, OccurredAt: at(2), Value: time.Hour},
		{Kind: schema.WorkLoggedPoint, OccurredAt: at(2), Value: -time.Hour},
	})
	transitions := []schema.StageChange{
		{At: at(1), From: schema.StageInProgress, To: schema.StageDeferred, ChangeID: 3},
		{At: at(2), From: schema.StageDeferred, To: schema.StageInProgress, ChangeID: 4},
	}

	// Scope changes at the resume instant still land while paused; work logged after it does not.
	zeroed := ZeroDeferred(totals, transitions)
	assert.Equal(t, []schema.PointKind{
		schema.NewTaskPoint, schema.StageChangePoint, schema.ScopeChangePoint, schema.StageChangePoint, schema.WorkLoggedPoint,
	}, kinds(zeroed))
	assert.Equal(t, []time.Duration{4 * time.Hour, 4 * time.Hour, 0, 5 * time.Hour, 4 * time.Hour}, values(zeroed))
}

func TestZeroDeferredWithoutTransitions(t *testing.T) {
	totals := Accumulate(deltas(4, -1))
	assert.Equal(t, totals, ZeroDeferred(totals, nil))

	irrelevant := FinishedTransitions([]schema.StageChange{
		{At: at(0), From: schema.StageTodo, To: schema.StageInProgress},
		{At: at(1), From: schema.StageDone, To: schema.StageDeferred},
	})
	assert.Empty(t, irrelevant)
}

func TestSettleTransitions(t *testing.T) {
	h := parkedHistory()
	events := EventsFromHistory(h)
	transitions := FinishedTransitions(StageChanges(events))
	zeroed := ZeroDeferred(Accumulate(ExtractDeltas(events, schema.BurndownMode)), transitions)

	settled := SettleTransitions(zeroed, transitions)
	require.Len(t, settled, len(zeroed)+1)
	assert.Equal(t, []time.Duration{4 * time.Hour, time.Hour, time.Hour, 0, 0, 0, time.Hour, 30 * time.Minute}, values(settled))
	assert.Equal(t, settled[2].SourceID, settled[3].SourceID)
	assert.Equal(t, settled[2].OccurredAt, settled[3].OccurredAt)
}

func TestTaskDeltas(t *testing.T) {
	got := TaskDeltas(estimateHistory())
	assert.Equal(t, []time.Duration{2 * time.Hour, 3 * time.Hour, -time.Hour, -time.Hour}, values(got))

	parked := TaskDeltas(parkedHistory())
	assert.Equal(t, []time.Duration{
		4 * time.Hour, -3 * time.Hour, 0, -time.Hour, 0, time.Hour, -30 * time.Minute,
	}, values(parked))
}

// twoTasks is task A (4h, parked in Done on day 2) and task B (2h from day 1, 1h logged on day 3).
func twoTasks() []schema.TaskHistory {
	return []schema.TaskHistory{
		{
			Task: schema.Task{ID: 1, Stage: schema.StageDone, OriginalEstimate: 4 * time.Hour, CreatedAt: at(0)},
			StageChanges: []schema.StageChange{
				{At: at(2), From: schema.StageTodo, To: schema.StageDone, ChangeID: 30},
			},
		},
		{
			Task:     schema.Task{ID: 2, Stage: schema.StageTodo, OriginalEstimate: 2 * time.Hour, CreatedAt: at(1)},
			Worklogs: []schema.Worklog{{ID: 40, Duration: time.Hour, OccurredAt: at(3)}},
		},
	}
}

func TestBurndown(t *testing.T) {
	got := Burndown(twoTasks(), at(-1))
	assert.Equal(t, []time.Duration{0, 4 * time.Hour, 6 * time.Hour, 6 * time.Hour, 2 * time.Hour, time.Hour}, values(got))

	fromDayOne := Burndown(twoTasks(), at(1))
	assert.Equal(t, []time.Duration{6 * time.Hour, 6 * time.Hour, 2 * time.Hour, time.Hour}, values(fromDayOne))
	assert.Equal(t, schema.InitialPoint, fromDayOne[0].Kind)
}

func TestBurnup(t *testing.T) {
	completed, scope := Burnup(twoTasks(), at(-1))
	assert.Equal(t, []time.Duration{0, time.Hour}, values(completed))
	assert.Equal(t, []time.Duration{0, 4 * time.Hour, 6 * time.Hour}, values(scope))
	assert.Equal(t, int64(40), completed[1].SourceID)
}

func TestMergeStableOnTies(t *testing.T) {
	a := []schema.DurationPoint{
		{Kind: schema.WorkLoggedPoint, OccurredAt: at(0), SourceID: 1},
		{Kind: schema.WorkLoggedPoint, OccurredAt: at(1), SourceID: 2},
	}
	b := []schema.DurationPoint{
		{Kind: schema.NewTaskPoint, OccurredAt: at(0), SourceID: 3},
		{Kind: schema.WorkLoggedPoint, OccurredAt: at(1), SourceID: 4},
	}

	merged := Merge(a, b)
	got := make([]int64, len(merged))
	for i, p := range merged {
		got[i] = p.SourceID
	}
	assert.Equal(t, []int64{3, 1, 2, 4}, got)
}

func TestUntilAndToHours(t *testing.T) {
	totals := Accumulate(deltas(1.5, 1, -0.25))

	hoursOut := ToHours(totals)
	assert.Equal(t, []float64{1.5, 2.5, 2.25}, []float64{hoursOut[0].Value, hoursOut[1].Value, hoursOut[2].Value})

	assert.Len(t, Until(hoursOut, at(1)), 2)
	assert.Len(t, Until(hoursOut, time.Time{}), 3)
	assert.Empty(t, Until(hoursOut, at(-1)))
}
