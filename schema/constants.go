package schema

import (
	"fmt"
	"strings"
)

// Custom string types for type safety.
type (
	// Stage is a workflow stage a task sits in.
	Stage string

	// ChartMode selects between burndown and burnup semantics.
	ChartMode string

	// ScopeKind is the aggregate unit a chart is computed over.
	ScopeKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for history and caching.
	DatabaseBackend string

	// ChangeField is the task field a changelog record refers to.
	ChangeField string
)

// All workflow stages, in board order.
const (
	StageTodo        Stage = "todo"
	StageInProgress  Stage = "in_progress"
	StageUnderReview Stage = "under_review"
	StageDone        Stage = "done"
	StageDeferred    Stage = "deferred"
)

// AllStages lists every stage in board order. Flow series are emitted in this order.
var AllStages = []Stage{StageTodo, StageInProgress, StageUnderReview, StageDone, StageDeferred}

// NumStages is the width of a flow delta vector.
const NumStages = 5

// IsFinished reports whether the stage suspends a task's remaining work.
func (s Stage) IsFinished() bool {
	return s == StageDone || s == StageDeferred
}

// Index returns the slot of the stage in AllStages, or -1 if unknown.
func (s Stage) Index() int {
	for i, st := range AllStages {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether the stage is one of AllStages.
func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Label returns a human-readable name, e.g. "Under Review".
func (s Stage) Label() string {
	switch s {
	case StageTodo:
		return "Todo"
	case StageInProgress:
		return "In Progress"
	case StageUnderReview:
		return "Under Review"
	case StageDone:
		return "Done"
	case StageDeferred:
		return "Deferred"
	default:
		return string(s)
	}
}

// ParseStage converts user or database text into a Stage.
// Accepts "in_progress", "in-progress", "In Progress" and similar spellings.
func ParseStage(s string) (Stage, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	st := Stage(norm)
	if !st.Valid() {
		return "", fmt.Errorf("unknown stage %q", s)
	}
	return st, nil
}

// All chart modes supported.
const (
	BurndownMode ChartMode = "burndown" // default
	BurnupMode   ChartMode = "burnup"
)

// All scope kinds supported.
const (
	SprintScope  ScopeKind = "sprint" // default
	ProjectScope ScopeKind = "project"
)

// Changelog fields the engine consumes.
const (
	EstimateField ChangeField = "estimate"
	StageField    ChangeField = "stage"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	HTMLOut:    {},
}

// ValidChartModes lists all valid chart modes.
var ValidChartModes = map[ChartMode]struct{}{
	BurndownMode: {},
	BurnupMode:   {},
}

// ValidScopeKinds lists all valid scope kinds.
var ValidScopeKinds = map[ScopeKind]struct{}{
	SprintScope:  {},
	ProjectScope: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
