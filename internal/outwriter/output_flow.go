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

// writeFlowTable prints one row per flow instant with a column per stage.
func writeFlowTable(w io.Writer, result schema.FlowResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	title := fmt.Sprintf("Cumulative flow of %s, %d tasks", scopeTitle(result.Scope), result.TaskCount)
	fmt.Fprintln(w, headerTitle(title, "🌊", cfg))

	table := tablewriter.NewWriter(w)
	headers := []string{"Instant", "Kind"}
	for _, stage := range result.Stages {
		headers = append(headers, stage.Label())
	}
	headers = append(headers, "Total")
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range result.Rows() {
		first := result.Series[result.Stages[0]][i]
		row := []string{first.OccurredAt.Format(contract.DateTimeFormat), kindLabel(first.Kind, cfg)}
		var total float64
		for _, stage := range result.Stages {
			v := result.Series[stage][i].Value
			total += v
			row = append(row, fmtFloat(v))
		}
		data = append(data, append(row, fmtFloat(total)))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Flow computed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

// writeFlowCSV writes the flow in wide form: one row per instant, one column per stage.
func writeFlowCSV(w io.Writer, result schema.FlowResult, fmtFloat func(float64) string) error {
	header := []string{"occurred_at", "kind"}
	for _, stage := range result.Stages {
		header = append(header, string(stage))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i := range result.Rows() {
			first := result.Series[result.Stages[0]][i]
			row := []string{first.OccurredAt.Format(contract.DateTimeFormat), first.Kind.String()}
			for _, stage := range result.Stages {
				row = append(row, fmtFloat(result.Series[stage][i].Value))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
