package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/core/series"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/metrics"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Operation names used for cache keys, logs and metrics.
const (
	opTaskDeltas = "task_deltas"
	opFlow       = "flow"
)

// GetTaskTimeDeltas returns the per-step burndown deltas of a single task.
func GetTaskTimeDeltas(ctx context.Context, store contract.HistoryStore, taskID int64) (schema.TaskDeltasResult, error) {
	start := time.Now()
	history, err := store.GetTaskHistory(ctx, taskID)
	if err != nil {
		return schema.TaskDeltasResult{}, fmt.Errorf("failed to load task %d: %w", taskID, err)
	}

	deltas := series.ToHours(series.TaskDeltas(history))
	metrics.Default.RecordSeries(opTaskDeltas, len(deltas), time.Since(start))
	contract.Logger.Debug().
		Int64("task_id", taskID).
		Int("points", len(deltas)).
		Dur("elapsed", time.Since(start)).
		Msg("task deltas computed")
	return schema.TaskDeltasResult{Task: history.Task, Deltas: deltas}, nil
}

// GetData returns the burndown or burnup of a whole scope, starting at the scope's start.
// A scope without a start instant cannot be charted.
func GetData(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, scope schema.Scope, mode schema.ChartMode) (schema.BurnResult, error) {
	if scope.Start == nil {
		return schema.BurnResult{}, fmt.Errorf("%w: %s %d has no start instant", contract.ErrInvalidState, scope.Kind, scope.ID)
	}
	if _, ok := schema.ValidChartModes[mode]; !ok {
		return schema.BurnResult{}, fmt.Errorf("%w: unknown chart mode %q", contract.ErrInvalidInput, mode)
	}

	result, err := cachedSeries(ctx, cfg, mgr, string(mode), scope, mode, func() (schema.BurnResult, error) {
		return computeBurn(ctx, mgr.GetHistoryStore(), scope, mode)
	})
	if err != nil {
		return result, err
	}
	asOf := asOfInstant(cfg)
	result.Points = series.Until(result.Points, asOf)
	if result.ScopePoints != nil {
		result.ScopePoints = series.Until(result.ScopePoints, asOf)
	}
	return result, nil
}

func computeBurn(ctx context.Context, store contract.HistoryStore, scope schema.Scope, mode schema.ChartMode) (schema.BurnResult, error) {
	start := time.Now()
	histories, err := store.ListTaskHistories(ctx, scope)
	if err != nil {
		return schema.BurnResult{}, fmt.Errorf("failed to load task histories: %w", err)
	}

	cutoff := *scope.Start
	result := schema.BurnResult{Scope: scope, Mode: mode, Cutoff: cutoff, TaskCount: len(histories)}
	switch mode {
	case schema.BurnupMode:
		completed, committed := series.Burnup(histories, cutoff)
		result.Points = series.ToHours(completed)
		result.ScopePoints = series.ToHours(committed)
	default:
		result.Points = series.ToHours(series.Burndown(histories, cutoff))
	}

	metrics.Default.RecordSeries(string(mode), len(result.Points), time.Since(start))
	contract.Logger.Debug().
		Str("scope", string(scope.Kind)).
		Int64("scope_id", scope.ID).
		Str("mode", string(mode)).
		Int("tasks", len(histories)).
		Int("points", len(result.Points)).
		Dur("elapsed", time.Since(start)).
		Msg("series computed")
	return result, nil
}

// GetFlowData returns the cumulative flow of a scope: one aligned hour series per stage.
func GetFlowData(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, scope schema.Scope) (schema.FlowResult, error) {
	if scope.Start == nil {
		return schema.FlowResult{}, fmt.Errorf("%w: %s %d has no start instant", contract.ErrInvalidState, scope.Kind, scope.ID)
	}

	result, err := cachedSeries(ctx, cfg, mgr, opFlow, scope, "", func() (schema.FlowResult, error) {
		return computeFlow(ctx, mgr.GetHistoryStore(), scope)
	})
	if err != nil {
		return result, err
	}
	asOf := asOfInstant(cfg)
	for stage, points := range result.Series {
		result.Series[stage] = series.Until(points, asOf)
	}
	return result, nil
}

func computeFlow(ctx context.Context, store contract.HistoryStore, scope schema.Scope) (schema.FlowResult, error) {
	start := time.Now()
	histories, err := store.ListTaskHistories(ctx, scope)
	if err != nil {
		return schema.FlowResult{}, fmt.Errorf("failed to load task histories: %w", err)
	}

	cutoff := *scope.Start
	perStage := series.AggregateFlow(histories, cutoff)
	result := schema.FlowResult{
		Scope:     scope,
		Cutoff:    cutoff,
		TaskCount: len(histories),
		Stages:    append([]schema.Stage(nil), schema.AllStages...),
		Series:    make(map[schema.Stage][]schema.HourPoint, len(schema.AllStages)),
	}
	for _, stage := range schema.AllStages {
		result.Series[stage] = series.ToHours(perStage[stage])
	}

	metrics.Default.RecordSeries(opFlow, result.Rows(), time.Since(start))
	contract.Logger.Debug().
		Str("scope", string(scope.Kind)).
		Int64("scope_id", scope.ID).
		Int("tasks", len(histories)).
		Int("rows", result.Rows()).
		Dur("elapsed", time.Since(start)).
		Msg("flow computed")
	return result, nil
}

func asOfInstant(cfg *contract.Config) time.Time {
	if cfg == nil {
		return time.Time{}
	}
	return cfg.AsOf
}
