package parquet

import (
	"bytes"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func TestSeriesRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(SeriesRow))
	for _, colName := range []string{"scope_kind", "scope_id", "series", "kind", "occurred_at", "hours", "source_id"} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}

	s = parquet.SchemaOf(new(FlowRow))
	for _, colName := range []string{"row", "stage", "hours"} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func sampleBurnup() schema.BurnResult {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return schema.BurnResult{
		Scope: schema.Scope{Kind: schema.SprintScope, ID: 10, Start: &start},
		Mode:  schema.BurnupMode,
		Points: []schema.HourPoint{
			{Kind: schema.InitialPoint, OccurredAt: start},
			{Kind: schema.WorkLoggedPoint, OccurredAt: start.Add(time.Hour), Value: 1, SourceID: 5000},
		},
		ScopePoints: []schema.HourPoint{
			{Kind: schema.InitialPoint, OccurredAt: start, Value: 2},
		},
	}
}

func TestBurnRows(t *testing.T) {
	rows := BurnRows(sampleBurnup())
	require.Len(t, rows, 3)
	assert.Equal(t, CompletedSeries, rows[0].Series)
	assert.Nil(t, rows[0].SourceID)
	require.NotNil(t, rows[1].SourceID)
	assert.Equal(t, int64(5000), *rows[1].SourceID)
	assert.Equal(t, ScopeSeries, rows[2].Series)
	assert.Equal(t, "sprint", rows[2].ScopeKind)
}

func TestFlowRows(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result := schema.FlowResult{
		Scope:  schema.Scope{Kind: schema.ProjectScope, ID: 1},
		Stages: []schema.Stage{schema.StageTodo, schema.StageDone},
		Series: map[schema.Stage][]schema.HourPoint{
			schema.StageTodo: {{Kind: schema.InitialPoint, OccurredAt: start, Value: 3}, {Kind: schema.StageChangePoint, OccurredAt: start.Add(time.Hour)}},
			schema.StageDone: {{Kind: schema.InitialPoint, OccurredAt: start}, {Kind: schema.StageChangePoint, OccurredAt: start.Add(time.Hour), Value: 3}},
		},
	}
	rows := FlowRows(result)
	require.Len(t, rows, 4)
	assert.Equal(t, FlowRow{ScopeKind: "project", ScopeID: 1, Row: 1, Stage: "done", Kind: "stage_change", OccurredAt: start.Add(time.Hour), Hours: 3}, rows[3])
}

func TestWriteRowsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rows := BurnRows(sampleBurnup())
	require.NoError(t, WriteRows(&buf, rows))

	read, err := parquet.Read[SeriesRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, read, len(rows))
	assert.Equal(t, rows[1].Hours, read[1].Hours)
	assert.Equal(t, rows[1].Series, read[1].Series)
}

func TestTaskDeltaRows(t *testing.T) {
	result := schema.TaskDeltasResult{
		Task:   schema.Task{ID: 100},
		Deltas: []schema.HourPoint{{Kind: schema.NewTaskPoint, Value: 2, SourceID: 100}, {Kind: schema.WorkLoggedPoint, Value: -1, SourceID: 5000}},
	}
	rows := TaskDeltaRows(result)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(100), rows[1].TaskID)
	assert.Equal(t, -1.0, rows[1].DeltaHours)
	assert.Equal(t, "work_logged", rows[1].Kind)
}
