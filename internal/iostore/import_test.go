package iostore

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func TestLoadBoard(t *testing.T) {
	board := loadSampleBoard(t)
	require.Len(t, board.Projects, 1)
	p := board.Projects[0]
	assert.Len(t, p.Sprints, 2)
	assert.Nil(t, p.Sprints[1].Started)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "5h", p.Tasks[0].Changelog[0].New)
	assert.Equal(t, int64(10), p.Tasks[0].Sprint)

	_, err := LoadBoard(strings.NewReader(""))
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = LoadBoard(strings.NewReader("projects:\n  - id: 1\n    colour: red\n"))
	assert.ErrorIs(t, err, contract.ErrInvalidInput, "unknown fields are rejected")
}

func TestValidateBoard(t *testing.T) {
	summary, err := ValidateBoard(loadSampleBoard(t))
	require.NoError(t, err)
	assert.Equal(t, schema.ImportSummary{Projects: 1, Sprints: 2, Tasks: 2, Changelog: 2, Worklogs: 2}, summary)

	tests := []struct {
		name   string
		mutate func(b *schema.Board)
	}{
		{"non-positive project id", func(b *schema.Board) { b.Projects[0].ID = 0 }},
		{"duplicate task id", func(b *schema.Board) { b.Projects[0].Tasks[1].ID = 100 }},
		{"unknown stage", func(b *schema.Board) { b.Projects[0].Tasks[1].Stage = "blocked" }},
		{"bad estimate", func(b *schema.Board) { b.Projects[0].Tasks[1].Estimate = "two hours" }},
		{"negative estimate", func(b *schema.Board) { b.Projects[0].Tasks[1].Estimate = "-1h" }},
		{"sub-minute duration", func(b *schema.Board) { b.Projects[0].Tasks[0].Worklogs[0].Duration = "90s" }},
		{"unknown field", func(b *schema.Board) { b.Projects[0].Tasks[0].Changelog[0].Field = "priority" }},
		{"bad stage change", func(b *schema.Board) { b.Projects[0].Tasks[0].Changelog[1].New = "shipped" }},
		{"foreign sprint", func(b *schema.Board) { b.Projects[0].Tasks[1].Sprint = 99 }},
		{"missing creation", func(b *schema.Board) { b.Projects[0].Tasks[1].Created = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := loadSampleBoard(t)
			tt.mutate(&board)
			_, err := ValidateBoard(board)
			assert.ErrorIs(t, err, contract.ErrInvalidInput)
		})
	}
}

func TestBoardMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0s", 0, false},
		{"1h30m", 90, false},
		{"45m", 45, false},
		{"1m30s", 0, true},
		{"-5m", 0, true},
		{"3 hours", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := boardMinutes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
