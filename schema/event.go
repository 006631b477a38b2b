package schema

import (
	"fmt"
	"time"
)

// PointKind tags where a series point came from.
// The numeric order doubles as the tie-break priority for events sharing an instant.
type PointKind int

// All point kinds, in tie-break order.
const (
	NewTaskPoint PointKind = iota
	ScopeChangePoint
	StageChangePoint
	WorkLoggedPoint
	InitialPoint
)

var pointKindNames = map[PointKind]string{
	NewTaskPoint:     "new_task",
	ScopeChangePoint: "scope_change",
	StageChangePoint: "stage_change",
	WorkLoggedPoint:  "work_logged",
	InitialPoint:     "initial",
}

// String returns the wire name of the kind.
func (k PointKind) String() string {
	if name, ok := pointKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler so JSON carries kind names.
func (k PointKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PointKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePointKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePointKind converts a wire name (e.g. "work_logged") into a PointKind.
func ParsePointKind(s string) (PointKind, error) {
	for k, name := range pointKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown point kind %q", s)
}

// Event is a single immutable fact from a task's audit history.
type Event interface {
	OccurredAt() time.Time
	Kind() PointKind
	SourceID() int64
}

// TaskCreated records the creation of a task with its original estimate.
type TaskCreated struct {
	At               time.Time
	OriginalEstimate time.Duration
	TaskID           int64
}

// ScopeChange records an estimate change; Delta is new minus old.
type ScopeChange struct {
	At       time.Time
	Delta    time.Duration
	ChangeID int64
}

// StageChange records a workflow transition.
type StageChange struct {
	At       time.Time
	From     Stage
	To       Stage
	ChangeID int64
}

// WorkLogged records time spent against the task.
type WorkLogged struct {
	At        time.Time
	Duration  time.Duration
	WorklogID int64
}

func (e TaskCreated) OccurredAt() time.Time { return e.At }
func (e TaskCreated) Kind() PointKind       { return NewTaskPoint }
func (e TaskCreated) SourceID() int64       { return e.TaskID }

func (e ScopeChange) OccurredAt() time.Time { return e.At }
func (e ScopeChange) Kind() PointKind       { return ScopeChangePoint }
func (e ScopeChange) SourceID() int64       { return e.ChangeID }

func (e StageChange) OccurredAt() time.Time { return e.At }
func (e StageChange) Kind() PointKind       { return StageChangePoint }
func (e StageChange) SourceID() int64       { return e.ChangeID }

// Pauses reports whether the transition enters the finished subset.
func (e StageChange) Pauses() bool { return !e.From.IsFinished() && e.To.IsFinished() }

// Resumes reports whether the transition leaves the finished subset.
func (e StageChange) Resumes() bool { return e.From.IsFinished() && !e.To.IsFinished() }

func (e WorkLogged) OccurredAt() time.Time { return e.At }
func (e WorkLogged) Kind() PointKind       { return WorkLoggedPoint }
func (e WorkLogged) SourceID() int64       { return e.WorklogID }
