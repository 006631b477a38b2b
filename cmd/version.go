package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fabgilson/scrumboard-throwaway-sub001/core"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// buildInfo describes the binary and what its stores understand.
type buildInfo struct {
	Version      string   `json:"version"`
	Commit       string   `json:"commit"`
	Built        string   `json:"built"`
	Runtime      string   `json:"runtime"`
	CacheVersion int      `json:"cache_version"`
	Backends     []string `json:"backends"`
	Outputs      []string `json:"outputs"`
}

// currentBuildInfo collects the linker values and the supported backends and outputs.
func currentBuildInfo() buildInfo {
	info := buildInfo{
		Version:      version,
		Commit:       commit,
		Built:        date,
		Runtime:      runtime.Version(),
		CacheVersion: core.CacheVersion(),
	}
	for backend := range schema.ValidDatabaseBackends {
		info.Backends = append(info.Backends, string(backend))
	}
	for mode := range schema.ValidOutputModes {
		info.Outputs = append(info.Outputs, string(mode))
	}
	slices.Sort(info.Backends)
	slices.Sort(info.Outputs)
	return info
}

// writeBuildInfo renders info as JSON for the json output mode and as labelled lines otherwise.
func writeBuildInfo(w io.Writer, info buildInfo, mode schema.OutputMode) error {
	if mode == schema.JSONOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err := fmt.Fprintf(w, "burndown CLI\n  Version:  %s\n  Commit:   %s\n  Built:    %s\n  Runtime:  %s\n  Cache:    v%d\n  Backends: %s\n  Outputs:  %s\n",
		info.Version, info.Commit, info.Built, info.Runtime, info.CacheVersion,
		strings.Join(info.Backends, ", "), strings.Join(info.Outputs, ", "))
	return err
}

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of burndown.",
	Long: `Display version information including build details.

Shows the release version, git commit, build timestamp and Go runtime,
along with the cached series layout version and the supported store
backends and output formats. Use --output json for a machine-readable form.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeBuildInfo(cmd.OutOrStdout(), currentBuildInfo(), schema.OutputMode(viper.GetString("output")))
	},
}
