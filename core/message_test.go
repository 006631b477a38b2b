package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/iostore"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func messageStore() *iostore.MockHistoryStore {
	task := loginTask().Task
	store := &iostore.MockHistoryStore{}
	store.On("GetTask", mock.Anything, int64(100)).Return(task, nil)
	store.On("GetChangelogEntry", mock.Anything, int64(1000)).Return(schema.ChangelogEntry{
		ID: 1000, TaskID: 100, Field: schema.EstimateField, OldValue: "120", NewValue: "300", CreatedAt: jan(2, 9),
	}, nil)
	store.On("GetChangelogEntry", mock.Anything, int64(1001)).Return(schema.ChangelogEntry{
		ID: 1001, TaskID: 100, Field: schema.StageField, OldValue: "in_progress", NewValue: "under_review", CreatedAt: jan(5, 9),
	}, nil)
	store.On("GetWorklog", mock.Anything, int64(5000)).Return(loginTask().Worklogs[0], nil)
	store.On("GetWorklog", mock.Anything, int64(404)).Return(schema.Worklog{}, contract.ErrNotFound)
	return store
}

func TestGenerateMessage(t *testing.T) {
	ctx := context.Background()
	store := messageStore()

	tests := []struct {
		name   string
		point  schema.HourPoint
		title  string
		detail string
		author string
	}{
		{"new task", schema.HourPoint{Kind: schema.NewTaskPoint, SourceID: 100}, "Created Login page", "Estimated at 2h", ""},
		{"scope change", schema.HourPoint{Kind: schema.ScopeChangePoint, SourceID: 1000}, "Re-estimated Login page", "2h to 5h", ""},
		{"stage change", schema.HourPoint{Kind: schema.StageChangePoint, SourceID: 1001}, "Moved Login page", "In Progress to Under Review", ""},
		{"work logged", schema.HourPoint{Kind: schema.WorkLoggedPoint, SourceID: 5000}, "Logged 1h on Login page", "", "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := GenerateMessage(ctx, store, tt.point)
			require.NoError(t, err)
			assert.Equal(t, tt.title, msg.Title)
			assert.Equal(t, tt.detail, msg.Detail)
			assert.Equal(t, tt.author, msg.Author)
			assert.Equal(t, int64(100), msg.TaskID)
			assert.Equal(t, "Login page", msg.TaskName)
			assert.False(t, msg.OccurredAt.IsZero(), "the record instant fills a missing point instant")
		})
	}
}

func TestGenerateMessageInitialNeedsNoStore(t *testing.T) {
	store := &iostore.MockHistoryStore{}
	point := schema.HourPoint{Kind: schema.InitialPoint, OccurredAt: jan(1, 0)}

	msg, err := GenerateMessage(context.Background(), store, point)
	require.NoError(t, err)
	assert.Equal(t, "Starting point", msg.Title)
	assert.Equal(t, jan(1, 0), msg.OccurredAt)
	store.AssertExpectations(t)
}

func TestGenerateMessageKeepsPointInstant(t *testing.T) {
	point := schema.HourPoint{Kind: schema.WorkLoggedPoint, SourceID: 5000, OccurredAt: jan(9, 0)}
	msg, err := GenerateMessage(context.Background(), messageStore(), point)
	require.NoError(t, err)
	assert.Equal(t, jan(9, 0), msg.OccurredAt)
}

func TestGenerateMessageErrors(t *testing.T) {
	ctx := context.Background()
	store := messageStore()

	_, err := GenerateMessage(ctx, store, schema.HourPoint{Kind: schema.PointKind(42), SourceID: 1})
	assert.ErrorIs(t, err, contract.ErrNotImplemented)

	_, err = GenerateMessage(ctx, store, schema.HourPoint{Kind: schema.WorkLoggedPoint, SourceID: 404})
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestMinutesLabel(t *testing.T) {
	assert.Equal(t, "1.5h", minutesLabel("90"))
	assert.Equal(t, "0h", minutesLabel(""))
	assert.Equal(t, "soon", minutesLabel("soon"))
	assert.Equal(t, "blocked", stageLabel("blocked"))
}
