package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fabgilson/scrumboard-throwaway-sub001/core"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
)

// runExecutor adapts a core executor to a cobra Run function.
func runExecutor(exec core.ExecutorFunc, failure string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// burndownCmd charts remaining work.
var burndownCmd = &cobra.Command{
	Use:   "burndown",
	Short: "Show remaining work over time for a sprint or project.",
	Long: `Replay task creation, re-estimates, stage moves and worklogs to rebuild
how much estimated work was left at every change.

Tasks moved to Done or Deferred stop counting until they are moved back.

Examples:
  # Burndown of sprint 10
  burndown burndown --scope-id 10

  # Project-wide burndown as it looked two weeks ago
  burndown burndown --scope project --scope-id 1 --as-of "2 weeks ago"

  # Interactive chart
  burndown burndown --scope-id 10 --output html --output-file sprint10.html`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteBurndown, "Cannot compute burndown"),
}

// burnupCmd charts completed work against scope.
var burnupCmd = &cobra.Command{
	Use:   "burnup",
	Short: "Show completed work and total scope over time.",
	Long: `Rebuild two series for a sprint or project: hours logged so far, and the
total estimate committed so far.

Examples:
  burndown burnup --scope-id 10
  burndown burnup --scope-id 10 --output csv --output-file burnup.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteBurnup, "Cannot compute burnup"),
}

// flowCmd charts the cumulative flow.
var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Show estimated hours per stage over time (cumulative flow).",
	Long: `Rebuild how the estimated hours of a sprint or project were spread across
Todo, In Progress, Under Review, Done and Deferred at every change.

Examples:
  burndown flow --scope-id 10
  burndown flow --scope-id 10 --output parquet --output-file flow.parquet`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteFlow, "Cannot compute flow"),
}

// taskCmd shows the per-step deltas of a single task.
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Show how a single task contributes to the burndown.",
	Long: `Print the burndown delta of every event of one task, with the running total.

Examples:
  burndown task --task-id 100`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteTaskDeltas, "Cannot compute task deltas"),
}

// messageCmd describes the record behind a chart point.
var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Describe the record behind a chart point.",
	Long: `Resolve a point's kind and source id back to the task, changelog entry or
worklog that produced it.

Examples:
  burndown message --kind work_logged --source-id 5000
  burndown message --kind stage_change --source-id 1001 --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteMessage, "Cannot describe point"),
}
