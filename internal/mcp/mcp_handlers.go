package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fabgilson/scrumboard-throwaway-sub001/core"
	"github.com/fabgilson/scrumboard-throwaway-sub001/core/series"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}

// scopeConfig clones the base config and applies the scope arguments of a request.
func (h *toolHandler) scopeConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateScope(cfg,
		request.GetString("scope", ""),
		int64(request.GetInt("scope_id", 0)),
		request.GetString("as_of", ""))
	return cfg, err
}

func (h *toolHandler) handleBurn(mode schema.ChartMode) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, err := h.scopeConfig(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid %s parameters: %v", mode, err)), nil
		}

		scope, err := core.LoadScope(ctx, cfg, h.mgr.GetHistoryStore())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", mode, err)), nil
		}
		result, err := core.GetData(ctx, cfg, h.mgr, scope, mode)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", mode, err)), nil
		}
		return jsonResult(result), nil
	}
}

func (h *toolHandler) handleGetFlow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scopeConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid flow parameters: %v", err)), nil
	}

	scope, err := core.LoadScope(ctx, cfg, h.mgr.GetHistoryStore())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("flow failed: %v", err)), nil
	}
	result, err := core.GetFlowData(ctx, cfg, h.mgr, scope)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("flow failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleGetTaskDeltas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateTask(cfg, int64(request.GetInt("task_id", 0)), request.GetString("as_of", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid task parameters: %v", err)), nil
	}

	result, err := core.GetTaskTimeDeltas(ctx, h.mgr.GetHistoryStore(), cfg.TaskID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("task deltas failed: %v", err)), nil
	}
	result.Deltas = series.Until(result.Deltas, cfg.AsOf)
	return jsonResult(result), nil
}

func (h *toolHandler) handleDescribePoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidatePoint(cfg,
		request.GetString("kind", ""),
		int64(request.GetInt("source_id", 0)),
		request.GetString("occurred_at", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid point parameters: %v", err)), nil
	}
	point, err := core.PointFromConfig(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid point parameters: %v", err)), nil
	}

	msg, err := core.GenerateMessage(ctx, h.mgr.GetHistoryStore(), point)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe point failed: %v", err)), nil
	}
	return jsonResult(msg), nil
}
