package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageIsFinished(t *testing.T) {
	finished := map[Stage]bool{
		StageTodo:        false,
		StageInProgress:  false,
		StageUnderReview: false,
		StageDone:        true,
		StageDeferred:    true,
	}
	for stage, want := range finished {
		assert.Equal(t, want, stage.IsFinished(), "stage %s", stage)
	}
	assert.Len(t, AllStages, NumStages)
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input   string
		want    Stage
		wantErr bool
	}{
		{"todo", StageTodo, false},
		{"In Progress", StageInProgress, false},
		{"under-review", StageUnderReview, false},
		{" DONE ", StageDone, false},
		{"deferred", StageDeferred, false},
		{"blocked", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStageChangePausesResumes(t *testing.T) {
	assert.True(t, StageChange{From: StageInProgress, To: StageDone}.Pauses())
	assert.False(t, StageChange{From: StageInProgress, To: StageDone}.Resumes())
	assert.True(t, StageChange{From: StageDeferred, To: StageTodo}.Resumes())

	// Moving within the finished subset neither pauses nor resumes.
	within := StageChange{From: StageDone, To: StageDeferred}
	assert.False(t, within.Pauses())
	assert.False(t, within.Resumes())
}

func TestPointKindText(t *testing.T) {
	for _, k := range []PointKind{NewTaskPoint, ScopeChangePoint, StageChangePoint, WorkLoggedPoint, InitialPoint} {
		parsed, err := ParsePointKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParsePointKind("bogus")
	assert.Error(t, err)
	assert.Equal(t, "kind(42)", PointKind(42).String())
}

func TestSeriesPointJSON(t *testing.T) {
	p := HourPoint{
		Kind:       WorkLoggedPoint,
		OccurredAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Value:      1.5,
		SourceID:   7,
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"work_logged","occurred_at":"2024-01-03T00:00:00Z","value":1.5,"source_id":7}`, string(data))

	initial := HourPoint{Kind: InitialPoint, OccurredAt: p.OccurredAt}
	data, err = json.Marshal(initial)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "source_id")
}

func TestInitialStage(t *testing.T) {
	h := TaskHistory{Task: Task{Stage: StageDone}}
	assert.Equal(t, StageDone, h.InitialStage())

	h.StageChanges = []StageChange{{From: StageTodo, To: StageDone}}
	assert.Equal(t, StageTodo, h.InitialStage())
}

func TestShortAuthor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"popcorn", "popcorn"},
		{"Alice Moreau", "Alice M"},
		{"First Second Third", "First T"},
		{"Ava (Billy) Cathy", "Ava C"},
		{"Anne-Marie Smith", "Anne-Marie S"},
		{"  Alice  ", "Alice"},
		{"J. R. R. Tolkien", "J T"},
		{"renovate[bot]", "renovate[bot]"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortAuthor(tt.name))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2h", FormatHours(2*time.Hour))
	assert.Equal(t, "1.5h", FormatHours(90*time.Minute))
	assert.Equal(t, "0.25h", FormatHours(15*time.Minute))
	assert.Equal(t, "-1h", FormatHours(-time.Hour))
	assert.Equal(t, "0h", FormatHours(0))
}
