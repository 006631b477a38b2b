// main is the entry point for the burndown CLI.
package main

import (
	"github.com/fabgilson/scrumboard-throwaway-sub001/cmd"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/iostore"
)

func main() {
	defer iostore.CloseStores()

	err := cmd.Execute()

	if flushErr := cmd.FlushMetrics(); flushErr != nil {
		contract.LogWarn("Metrics were not written", flushErr)
	}
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Profiling did not stop cleanly", stopErr)
	}

	if err != nil {
		iostore.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
