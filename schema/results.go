package schema

import "time"

// BurnResult is a burndown or burnup series for a whole scope.
type BurnResult struct {
	Scope     Scope     `json:"scope"`
	Mode      ChartMode `json:"mode"`
	Cutoff    time.Time `json:"cutoff"`
	TaskCount int       `json:"task_count"`

	// Points is remaining work for burndown and completed work for burnup.
	Points []HourPoint `json:"points"`

	// ScopePoints is total committed scope; burnup only.
	ScopePoints []HourPoint `json:"scope_points,omitempty"`
}

// FlowResult is a cumulative flow diagram: one aligned series per stage.
type FlowResult struct {
	Scope     Scope                 `json:"scope"`
	Cutoff    time.Time             `json:"cutoff"`
	TaskCount int                   `json:"task_count"`
	Stages    []Stage               `json:"stages"`
	Series    map[Stage][]HourPoint `json:"series"`
}

// Rows returns the number of aligned rows in the flow series.
func (r FlowResult) Rows() int {
	if len(r.Stages) == 0 {
		return 0
	}
	return len(r.Series[r.Stages[0]])
}

// TaskDeltasResult is the per-render-step burndown of a single task.
type TaskDeltasResult struct {
	Task   Task        `json:"task"`
	Deltas []HourPoint `json:"deltas"`
}

// PointMessage is a display-ready description of a series point.
type PointMessage struct {
	Kind       PointKind `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	SourceID   int64     `json:"source_id,omitempty"`
	TaskID     int64     `json:"task_id,omitempty"`
	TaskName   string    `json:"task_name,omitempty"`
	Author     string    `json:"author,omitempty"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
}
