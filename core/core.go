// Package core has orchestration logic: it loads task histories, runs the
// series transforms, caches the results and hands them to the writers.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/core/series"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/outwriter"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// ExecutorFunc defines the function signature for executing the chart commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteBurndown computes the burndown of the configured scope and prints it.
func ExecuteBurndown(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return executeBurn(ctx, cfg, mgr, schema.BurndownMode)
}

// ExecuteBurnup computes the burnup of the configured scope and prints it.
func ExecuteBurnup(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return executeBurn(ctx, cfg, mgr, schema.BurnupMode)
}

func executeBurn(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, mode schema.ChartMode) error {
	start := time.Now()
	scope, err := LoadScope(ctx, cfg, mgr.GetHistoryStore())
	if err != nil {
		return err
	}
	result, err := GetData(ctx, cfg, mgr, scope, mode)
	if err != nil {
		return err
	}
	return outwriter.PrintBurnResult(result, cfg, time.Since(start))
}

// ExecuteFlow computes the cumulative flow of the configured scope and prints it.
func ExecuteFlow(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	scope, err := LoadScope(ctx, cfg, mgr.GetHistoryStore())
	if err != nil {
		return err
	}
	result, err := GetFlowData(ctx, cfg, mgr, scope)
	if err != nil {
		return err
	}
	return outwriter.PrintFlowResult(result, cfg, time.Since(start))
}

// ExecuteTaskDeltas computes the per-step burndown of the configured task and prints it.
func ExecuteTaskDeltas(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	if err := cfg.RequireTask(); err != nil {
		return err
	}
	result, err := GetTaskTimeDeltas(ctx, mgr.GetHistoryStore(), cfg.TaskID)
	if err != nil {
		return err
	}
	result.Deltas = series.Until(result.Deltas, cfg.AsOf)
	return outwriter.PrintTaskDeltas(result, cfg, time.Since(start))
}

// ExecuteMessage describes the configured point and prints it.
func ExecuteMessage(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	point, err := PointFromConfig(cfg)
	if err != nil {
		return err
	}
	msg, err := GenerateMessage(ctx, mgr.GetHistoryStore(), point)
	if err != nil {
		return err
	}
	return outwriter.PrintPointMessage(msg, cfg)
}

// PointFromConfig builds the point the message command describes.
// Every kind but Initial needs a source id.
func PointFromConfig(cfg *contract.Config) (schema.HourPoint, error) {
	if cfg.PointKind != schema.InitialPoint && cfg.SourceID <= 0 {
		return schema.HourPoint{}, fmt.Errorf("%w: --source-id is required for %s points", contract.ErrInvalidInput, cfg.PointKind)
	}
	return schema.HourPoint{Kind: cfg.PointKind, OccurredAt: cfg.PointAt, SourceID: cfg.SourceID}, nil
}

// LoadScope resolves the configured sprint or project.
func LoadScope(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) (schema.Scope, error) {
	if err := cfg.RequireScope(); err != nil {
		return schema.Scope{}, err
	}
	scope, err := store.GetScope(ctx, cfg.ScopeKind, cfg.ScopeID)
	if err != nil {
		return scope, fmt.Errorf("failed to load %s %d: %w", cfg.ScopeKind, cfg.ScopeID, err)
	}
	return scope, nil
}
