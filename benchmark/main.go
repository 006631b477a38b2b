// Package main provides a performance benchmarking tool for the burndown CLI.
// It generates synthetic boards of increasing size, imports each into a scratch
// history store and times the chart commands, running each test multiple times,
// treating the first successful cached run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - burndown binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated boards and databases (default: a temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Board       string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	BoardSizes  map[string]int
	BoardOrder  []string
	Commands    []string
}

// sprintID is the sprint every generated task belongs to.
const sprintID = 10

func main() {
	workDir := ""
	if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		workDir = os.Args[1]
	} else {
		dir, err := os.MkdirTemp("", "burndown-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	}

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		BoardSizes:  map[string]int{"small": 50, "medium": 500, "large": 5000},
		BoardOrder:  []string{"small", "medium", "large"},
		Commands:    []string{"burndown", "burnup", "flow"},
	}

	if _, err := exec.LookPath("burndown"); err != nil {
		fmt.Printf("Prerequisites check failed: burndown binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// generateBoard builds a one-sprint project with the given number of tasks.
// Every task gets an estimate change, two worklogs and a walk through the stages.
func generateBoard(tasks int) schema.Board {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	start := base.Add(24 * time.Hour)
	end := start.Add(14 * 24 * time.Hour)

	project := schema.BoardProject{
		ID:      1,
		Name:    "Benchmark",
		Created: base,
		Sprints: []schema.BoardSprint{{ID: sprintID, Name: "Sprint 1", Started: &start, Ends: &end}},
	}

	var nextID int64 = 1000
	id := func() int64 {
		nextID++
		return nextID
	}
	stages := []string{"todo", "in_progress", "under_review", "done"}

	for i := range tasks {
		created := base.Add(time.Duration(i%48) * time.Hour)
		task := schema.BoardTask{
			ID:       int64(100 + i),
			Name:     fmt.Sprintf("Task %d", i),
			Sprint:   sprintID,
			Stage:    stages[i%len(stages)],
			Estimate: fmt.Sprintf("%dh", 2+i%6),
			Created:  created,
		}
		task.Changelog = append(task.Changelog, schema.BoardChange{
			ID: id(), Field: "estimate", Old: "1h", New: task.Estimate, At: created.Add(2 * time.Hour),
		})
		for s := 1; s <= i%len(stages); s++ {
			task.Changelog = append(task.Changelog, schema.BoardChange{
				ID: id(), Field: "stage", Old: stages[s-1], New: stages[s], At: created.Add(time.Duration(s) * 30 * time.Hour),
			})
		}
		for w := range 2 {
			task.Worklogs = append(task.Worklogs, schema.BoardWorklog{
				ID:       id(),
				Author:   fmt.Sprintf("dev%d", (i+w)%7),
				Duration: "45m",
				At:       created.Add(time.Duration(20+w*12) * time.Hour),
			})
		}
		project.Tasks = append(project.Tasks, task)
	}
	return schema.Board{Projects: []schema.BoardProject{project}}
}

// prepareBoard writes a generated board, imports it and returns the env pointing at it.
func prepareBoard(config BenchmarkConfig, name string, tasks int) ([]string, error) {
	dir := filepath.Join(config.WorkDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(generateBoard(tasks))
	if err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}
	boardPath := filepath.Join(dir, "board.yaml")
	if err := os.WriteFile(boardPath, data, 0o644); err != nil {
		return nil, err
	}

	env := append(os.Environ(),
		"BURNDOWN_STORE_DB_CONNECT="+filepath.Join(dir, "history.db"),
		"BURNDOWN_CACHE_DB_CONNECT="+filepath.Join(dir, "cache.db"),
	)
	for _, args := range [][]string{{"store", "clear"}, {"cache", "clear"}, {"store", "import", boardPath}} {
		cmd := exec.Command("burndown", args...)
		cmd.Env = env
		if output, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("burndown %s failed: %w\nOutput: %s", strings.Join(args, " "), err, output)
		}
	}
	return env, nil
}

// runBenchmarks executes all benchmark tests across configured board sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d boards, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.BoardOrder), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, name := range config.BoardOrder {
		tasks := config.BoardSizes[name]
		fmt.Printf("Benchmarking %s board (%d tasks)\n", name, tasks)

		env, err := prepareBoard(config, name, tasks)
		if err != nil {
			fmt.Printf("  Skipping: %v\n", err)
			continue
		}
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, env, name, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, env []string, board, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, board)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, env, command, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Board:       board,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a chart command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, env []string, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--scope-id", fmt.Sprint(sprintID), "--cache-backend", cacheBackend}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("burndown", args...)
		cmd.Env = env

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), "computed in") {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("burndown_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"board", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Board, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results per command
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Board, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
