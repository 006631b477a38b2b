// Package parquet provides row types and writers for exporting reconstructed
// series to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// SeriesRow is one point of a burndown or burnup series.
type SeriesRow struct {
	// ScopeKind is sprint or project
	ScopeKind string `parquet:"scope_kind,snappy"`

	// ScopeID identifies the sprint or project
	ScopeID int64 `parquet:"scope_id,snappy"`

	// Series is "remaining", "completed" or "scope"
	Series string `parquet:"series,snappy"`

	Kind       string    `parquet:"kind,snappy"`
	OccurredAt time.Time `parquet:"occurred_at,snappy"`
	Hours      float64   `parquet:"hours,snappy"`

	// SourceID points back to the task, changelog entry or worklog (nullable)
	SourceID *int64 `parquet:"source_id,optional,snappy"`
}

// FlowRow is the value of one stage at one instant of a cumulative flow diagram.
type FlowRow struct {
	ScopeKind  string    `parquet:"scope_kind,snappy"`
	ScopeID    int64     `parquet:"scope_id,snappy"`
	Row        int32     `parquet:"row,snappy"`
	Stage      string    `parquet:"stage,snappy"`
	Kind       string    `parquet:"kind,snappy"`
	OccurredAt time.Time `parquet:"occurred_at,snappy"`
	Hours      float64   `parquet:"hours,snappy"`
}

// TaskDeltaRow is one per-step delta of a single task.
type TaskDeltaRow struct {
	TaskID     int64     `parquet:"task_id,snappy"`
	Kind       string    `parquet:"kind,snappy"`
	OccurredAt time.Time `parquet:"occurred_at,snappy"`
	DeltaHours float64   `parquet:"delta_hours,snappy"`
	SourceID   *int64    `parquet:"source_id,optional,snappy"`
}

// Series names used in SeriesRow.
const (
	RemainingSeries = "remaining"
	CompletedSeries = "completed"
	ScopeSeries     = "scope"
)

// BurnRows flattens a burndown or burnup result.
func BurnRows(result schema.BurnResult) []SeriesRow {
	name := RemainingSeries
	if result.Mode == schema.BurnupMode {
		name = CompletedSeries
	}
	rows := seriesRows(result.Scope, name, result.Points)
	return append(rows, seriesRows(result.Scope, ScopeSeries, result.ScopePoints)...)
}

func seriesRows(scope schema.Scope, name string, points []schema.HourPoint) []SeriesRow {
	rows := make([]SeriesRow, len(points))
	for i, p := range points {
		rows[i] = SeriesRow{
			ScopeKind:  string(scope.Kind),
			ScopeID:    scope.ID,
			Series:     name,
			Kind:       p.Kind.String(),
			OccurredAt: p.OccurredAt,
			Hours:      p.Value,
			SourceID:   sourceID(p.SourceID),
		}
	}
	return rows
}

// FlowRows flattens a flow result in stage order, row by row.
func FlowRows(result schema.FlowResult) []FlowRow {
	rows := make([]FlowRow, 0, result.Rows()*len(result.Stages))
	for i := range result.Rows() {
		for _, stage := range result.Stages {
			p := result.Series[stage][i]
			rows = append(rows, FlowRow{
				ScopeKind:  string(result.Scope.Kind),
				ScopeID:    result.Scope.ID,
				Row:        int32(i),
				Stage:      string(stage),
				Kind:       p.Kind.String(),
				OccurredAt: p.OccurredAt,
				Hours:      p.Value,
			})
		}
	}
	return rows
}

// TaskDeltaRows flattens the deltas of a single task.
func TaskDeltaRows(result schema.TaskDeltasResult) []TaskDeltaRow {
	rows := make([]TaskDeltaRow, len(result.Deltas))
	for i, p := range result.Deltas {
		rows[i] = TaskDeltaRow{
			TaskID:     result.Task.ID,
			Kind:       p.Kind.String(),
			OccurredAt: p.OccurredAt,
			DeltaHours: p.Value,
			SourceID:   sourceID(p.SourceID),
		}
	}
	return rows
}

func sourceID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// WriteRows writes rows to w as a single Parquet file. The schema is
// inferred from the struct tags of T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
