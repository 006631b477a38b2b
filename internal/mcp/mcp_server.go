// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// scopeOptions are the arguments shared by the scope chart tools.
func scopeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("scope", mcp.Description("Scope kind (sprint, project). Defaults to 'sprint'."), mcp.Enum("sprint", "project")),
		mcp.WithNumber("scope_id", mcp.Description("Id of the sprint or project."), mcp.Required()),
		mcp.WithString("as_of", mcp.Description("Drop points after this instant (RFC 3339 or 'N units ago').")),
	}
}

// NewMCPServer initializes and configures the burndown MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Burndown Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_burndown ---
	s.AddTool(mcp.NewTool("get_burndown",
		append([]mcp.ToolOption{mcp.WithDescription("Reconstruct remaining work over time for a sprint or project.")}, scopeOptions()...)...,
	), h.handleBurn(schema.BurndownMode))

	// --- 2. Tool: get_burnup ---
	s.AddTool(mcp.NewTool("get_burnup",
		append([]mcp.ToolOption{mcp.WithDescription("Reconstruct completed work and total scope over time for a sprint or project.")}, scopeOptions()...)...,
	), h.handleBurn(schema.BurnupMode))

	// --- 3. Tool: get_flow ---
	s.AddTool(mcp.NewTool("get_flow",
		append([]mcp.ToolOption{mcp.WithDescription("Cumulative flow: estimated hours sitting in each stage over time.")}, scopeOptions()...)...,
	), h.handleGetFlow)

	// --- 4. Tool: get_task_deltas ---
	s.AddTool(mcp.NewTool("get_task_deltas",
		mcp.WithDescription("Per-step burndown contribution of a single task."),
		mcp.WithNumber("task_id", mcp.Description("Id of the task."), mcp.Required()),
		mcp.WithString("as_of", mcp.Description("Drop deltas after this instant.")),
	), h.handleGetTaskDeltas)

	// --- 5. Tool: describe_point ---
	s.AddTool(mcp.NewTool("describe_point",
		mcp.WithDescription("Describe the record behind a series point (task, estimate change, stage move or worklog)."),
		mcp.WithString("kind", mcp.Description("Point kind."), mcp.Required(),
			mcp.Enum("initial", "new_task", "scope_change", "stage_change", "work_logged")),
		mcp.WithNumber("source_id", mcp.Description("Source id carried by the point. Not needed for initial points.")),
		mcp.WithString("occurred_at", mcp.Description("Instant of the point (RFC 3339).")),
	), h.handleDescribePoint)

	return s
}

// StartMCPServer starts the burndown MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
