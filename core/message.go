package core

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// GenerateMessage resolves a point back to the task, changelog entry or worklog
// it came from and describes it for display. Initial points need no lookup.
func GenerateMessage(ctx context.Context, store contract.HistoryStore, point schema.HourPoint) (schema.PointMessage, error) {
	msg := schema.PointMessage{Kind: point.Kind, OccurredAt: point.OccurredAt, SourceID: point.SourceID}

	switch point.Kind {
	case schema.InitialPoint:
		msg.Title = "Starting point"
		return msg, nil

	case schema.NewTaskPoint:
		task, err := store.GetTask(ctx, point.SourceID)
		if err != nil {
			return msg, err
		}
		withTask(&msg, task)
		fillInstant(&msg, task.CreatedAt)
		msg.Title = "Created " + task.Name
		msg.Detail = "Estimated at " + schema.FormatHours(task.OriginalEstimate)
		return msg, nil

	case schema.ScopeChangePoint, schema.StageChangePoint:
		entry, err := store.GetChangelogEntry(ctx, point.SourceID)
		if err != nil {
			return msg, err
		}
		task, err := store.GetTask(ctx, entry.TaskID)
		if err != nil {
			return msg, err
		}
		withTask(&msg, task)
		fillInstant(&msg, entry.CreatedAt)
		if entry.Field == schema.StageField {
			msg.Title = "Moved " + task.Name
			msg.Detail = fmt.Sprintf("%s to %s", stageLabel(entry.OldValue), stageLabel(entry.NewValue))
		} else {
			msg.Title = "Re-estimated " + task.Name
			msg.Detail = fmt.Sprintf("%s to %s", minutesLabel(entry.OldValue), minutesLabel(entry.NewValue))
		}
		return msg, nil

	case schema.WorkLoggedPoint:
		wl, err := store.GetWorklog(ctx, point.SourceID)
		if err != nil {
			return msg, err
		}
		task, err := store.GetTask(ctx, wl.TaskID)
		if err != nil {
			return msg, err
		}
		withTask(&msg, task)
		fillInstant(&msg, wl.OccurredAt)
		msg.Author = schema.ShortAuthor(wl.Author)
		msg.Title = fmt.Sprintf("Logged %s on %s", schema.FormatHours(wl.Duration), task.Name)
		msg.Detail = wl.Description
		return msg, nil

	default:
		return msg, fmt.Errorf("%w: no message for point kind %s", contract.ErrNotImplemented, point.Kind)
	}
}

func withTask(msg *schema.PointMessage, task schema.Task) {
	msg.TaskID = task.ID
	msg.TaskName = task.Name
}

// fillInstant uses the record's own instant when the point did not carry one.
func fillInstant(msg *schema.PointMessage, at time.Time) {
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = at
	}
}

// stageLabel renders a stored stage name, falling back to the raw value.
func stageLabel(raw string) string {
	stage, err := schema.ParseStage(raw)
	if err != nil {
		return raw
	}
	return stage.Label()
}

// minutesLabel renders a stored estimate, falling back to the raw value.
func minutesLabel(raw string) string {
	if raw == "" {
		return schema.FormatHours(0)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return schema.FormatHours(time.Duration(n) * time.Minute)
}
