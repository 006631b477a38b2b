package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTaskDeltasTable prints each delta next to the running total it produces.
func writeTaskDeltasTable(w io.Writer, result schema.TaskDeltasResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	title := fmt.Sprintf("Task %d (%s), %s", result.Task.ID, result.Task.Name, result.Task.Stage.Label())
	fmt.Fprintln(w, headerTitle(title, "🧮", cfg))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Instant", "Kind", "Delta", "Running", "Source"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	var running float64
	for _, p := range result.Deltas {
		running += p.Value
		data = append(data, []string{
			p.OccurredAt.Format(contract.DateTimeFormat),
			kindLabel(p.Kind, cfg),
			fmtDelta(fmtFloat, p.Value),
			fmtFloat(running),
			sourceLabel(p.SourceID),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Task deltas computed in %v\n", duration)
	return nil
}

// fmtDelta prefixes positive deltas with "+".
func fmtDelta(fmtFloat func(float64) string, v float64) string {
	if v > 0 {
		return "+" + fmtFloat(v)
	}
	return fmtFloat(v)
}

// writeTaskDeltasCSV writes one CSV row per delta.
func writeTaskDeltasCSV(w io.Writer, result schema.TaskDeltasResult, fmtFloat func(float64) string) error {
	header := []string{"task_id", "kind", "occurred_at", "delta_hours", "source_id"}
	taskID := fmt.Sprintf("%d", result.Task.ID)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Deltas {
			row := []string{
				taskID,
				p.Kind.String(),
				p.OccurredAt.Format(contract.DateTimeFormat),
				fmtFloat(p.Value),
				sourceLabel(p.SourceID),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
