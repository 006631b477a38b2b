package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// messageFields returns the non-empty fields of a point message in display order.
func messageFields(msg schema.PointMessage) [][2]string {
	fields := [][2]string{
		{"Kind", contract.GetPlainKindLabel(msg.Kind)},
		{"Title", msg.Title},
	}
	if !msg.OccurredAt.IsZero() {
		fields = append(fields, [2]string{"Occurred", msg.OccurredAt.Format(contract.DateTimeFormat)})
	}
	if msg.TaskID != 0 {
		fields = append(fields, [2]string{"Task", fmt.Sprintf("%d %s", msg.TaskID, msg.TaskName)})
	}
	if msg.Author != "" {
		fields = append(fields, [2]string{"Author", msg.Author})
	}
	if msg.Detail != "" {
		fields = append(fields, [2]string{"Detail", msg.Detail})
	}
	if msg.SourceID != 0 {
		fields = append(fields, [2]string{"Source", sourceLabel(msg.SourceID)})
	}
	return fields
}

// writeMessageTable prints a point message as a two-column field/value table.
func writeMessageTable(w io.Writer, msg schema.PointMessage, cfg *contract.Config) error {
	fmt.Fprintln(w, headerTitle(msg.Title, "💬", cfg))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxValueWidth(cfg)
	var data [][]string
	for _, f := range messageFields(msg) {
		value := f[1]
		if f[0] == "Kind" {
			value = kindLabel(msg.Kind, cfg)
		} else {
			value = contract.TruncateText(value, maxWidth)
		}
		data = append(data, []string{f[0], value})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeMessageCSV writes a point message as field,value rows.
func writeMessageCSV(w io.Writer, msg schema.PointMessage) error {
	return writeCSVWithHeader(w, []string{"field", "value"}, func(cw *csv.Writer) error {
		for _, f := range messageFields(msg) {
			if err := cw.Write([]string{f[0], f[1]}); err != nil {
				return err
			}
		}
		return nil
	})
}
