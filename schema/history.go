package schema

import "time"

// Scope is a sprint or a project together with the instant its charts start at.
// Start is nil for sprints that have not started yet.
type Scope struct {
	Kind      ScopeKind  `json:"kind"`
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	Name      string     `json:"name"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
}

// Task is the current state of a task as stored.
type Task struct {
	ID               int64         `json:"id"`
	ProjectID        int64         `json:"project_id"`
	SprintID         *int64        `json:"sprint_id,omitempty"`
	Name             string        `json:"name"`
	Stage            Stage         `json:"stage"`
	OriginalEstimate time.Duration `json:"original_estimate"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ChangelogEntry is a raw changelog row. Values are minutes for the estimate
// field and stage names for the stage field.
type ChangelogEntry struct {
	ID        int64       `json:"id"`
	TaskID    int64       `json:"task_id"`
	Field     ChangeField `json:"field"`
	OldValue  string      `json:"old_value"`
	NewValue  string      `json:"new_value"`
	CreatedAt time.Time   `json:"created_at"`
}

// Worklog is time logged against a task.
type Worklog struct {
	ID          int64         `json:"id"`
	TaskID      int64         `json:"task_id"`
	Author      string        `json:"author"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// EstimateChange is a parsed changelog record on the estimate field.
type EstimateChange struct {
	ID  int64
	At  time.Time
	Old time.Duration
	New time.Duration
}

// TaskHistory is the full, already-materialized history of one task.
// Slices are expected in stored order (instant, then id).
type TaskHistory struct {
	Task            Task
	EstimateChanges []EstimateChange
	StageChanges    []StageChange
	Worklogs        []Worklog
}

// InitialStage is the stage the task was created in: the origin of its first
// transition, or its current stage when it never moved.
func (h TaskHistory) InitialStage() Stage {
	if len(h.StageChanges) > 0 {
		return h.StageChanges[0].From
	}
	return h.Task.Stage
}
