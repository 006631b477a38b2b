package outwriter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

const (
	chartLabelFormat = "2006-01-02 15:04"
	areaOpacity      = 0.5
	fullZoomPct      = 100
)

// newLineChart builds a line chart with the shared tooltip, legend and zoom options.
func newLineChart(title, subtitle, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "5px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: fullZoomPct}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Instant",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: yName,
		}),
	)
	return line
}

// writeBurnChart renders a burndown as one line, or a burnup as completed and scope lines.
func writeBurnChart(w io.Writer, result schema.BurnResult) error {
	name := "Burndown"
	if result.Mode == schema.BurnupMode {
		name = "Burnup"
	}
	line := newLineChart(fmt.Sprintf("%s of %s", name, scopeTitle(result.Scope)),
		fmt.Sprintf("%d tasks", result.TaskCount), "Hours")

	series := burnSeries(result)
	lists := make([][]schema.HourPoint, len(series))
	for i, s := range series {
		lists[i] = s.Points
	}
	instants, values := alignSeries(lists...)

	line.SetXAxis(chartLabels(instants))
	for i, s := range series {
		line.AddSeries(s.Name, lineData(values[i]))
	}
	return line.Render(w)
}

// writeFlowChart renders the flow as stacked areas, one per stage.
func writeFlowChart(w io.Writer, result schema.FlowResult) error {
	line := newLineChart(fmt.Sprintf("Cumulative flow of %s", scopeTitle(result.Scope)),
		fmt.Sprintf("%d tasks", result.TaskCount), "Hours")

	labels := make([]string, result.Rows())
	if result.Rows() > 0 {
		for i, p := range result.Series[result.Stages[0]] {
			labels[i] = p.OccurredAt.Format(chartLabelFormat)
		}
	}
	line.SetXAxis(labels)

	for _, stage := range result.Stages {
		points := result.Series[stage]
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = p.Value
		}
		line.AddSeries(
			stage.Label(),
			lineData(values),
			charts.WithLineChartOpts(opts.LineChart{Stack: "total"}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(areaOpacity)}),
		)
	}
	return line.Render(w)
}

// writeTaskDeltasChart renders the deltas of a task as bars.
func writeTaskDeltasChart(w io.Writer, result schema.TaskDeltasResult) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Task %d (%s)", result.Task.ID, result.Task.Name),
			Subtitle: "Burndown delta per step",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Hours",
		}),
	)

	labels := make([]string, len(result.Deltas))
	data := make([]opts.BarData, len(result.Deltas))
	for i, p := range result.Deltas {
		labels[i] = p.OccurredAt.Format(chartLabelFormat)
		data[i] = opts.BarData{Value: p.Value}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Delta", data)
	return bar.Render(w)
}

// alignSeries puts several series on the union of their instants. Each
// series holds its last value at or before an instant, and zero before its
// first point. Points sharing an instant collapse into the last of them.
func alignSeries(series ...[]schema.HourPoint) ([]time.Time, [][]float64) {
	seen := map[int64]time.Time{}
	for _, points := range series {
		for _, p := range points {
			seen[p.OccurredAt.UnixNano()] = p.OccurredAt
		}
	}
	instants := make([]time.Time, 0, len(seen))
	for _, t := range seen {
		instants = append(instants, t)
	}
	sort.Slice(instants, func(i, j int) bool { return instants[i].Before(instants[j]) })

	values := make([][]float64, len(series))
	for s, points := range series {
		values[s] = make([]float64, len(instants))
		var current float64
		next := 0
		for i, t := range instants {
			for next < len(points) && !points[next].OccurredAt.After(t) {
				current = points[next].Value
				next++
			}
			values[s][i] = current
		}
	}
	return instants, values
}

func chartLabels(instants []time.Time) []string {
	labels := make([]string, len(instants))
	for i, t := range instants {
		labels[i] = t.Format(chartLabelFormat)
	}
	return labels
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
