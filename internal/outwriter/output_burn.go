package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/parquet"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// namedSeries pairs a series with the name shown in tables, CSV and charts.
type namedSeries struct {
	Name   string
	Points []schema.HourPoint
}

// burnSeries lists the series of a burn result: remaining work for a
// burndown, completed work and scope for a burnup.
func burnSeries(result schema.BurnResult) []namedSeries {
	if result.Mode == schema.BurnupMode {
		return []namedSeries{
			{Name: parquet.CompletedSeries, Points: result.Points},
			{Name: parquet.ScopeSeries, Points: result.ScopePoints},
		}
	}
	return []namedSeries{{Name: parquet.RemainingSeries, Points: result.Points}}
}

// writeBurnTable prints every point of every series in a five-column table.
func writeBurnTable(w io.Writer, result schema.BurnResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	name, emoji := "Burndown", "📉"
	if result.Mode == schema.BurnupMode {
		name, emoji = "Burnup", "📈"
	}
	title := fmt.Sprintf("%s of %s, %d tasks", name, scopeTitle(result.Scope), result.TaskCount)
	fmt.Fprintln(w, headerTitle(title, emoji, cfg))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Instant", "Series", "Kind", "Hours", "Source"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range burnSeries(result) {
		for _, p := range s.Points {
			data = append(data, []string{
				p.OccurredAt.Format(contract.DateTimeFormat),
				s.Name,
				kindLabel(p.Kind, cfg),
				fmtFloat(p.Value),
				sourceLabel(p.SourceID),
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s computed in %v. Cache backend: %s\n", name, duration, cfg.CacheBackend)
	return nil
}

// writeBurnCSV writes one CSV row per point of every series.
func writeBurnCSV(w io.Writer, result schema.BurnResult, fmtFloat func(float64) string) error {
	header := []string{"series", "kind", "occurred_at", "hours", "source_id"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range burnSeries(result) {
			for _, p := range s.Points {
				row := []string{
					s.Name,
					p.Kind.String(),
					p.OccurredAt.Format(contract.DateTimeFormat),
					fmtFloat(p.Value),
					sourceLabel(p.SourceID),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
