// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/parquet"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// PrintBurnResult outputs a burndown or burnup, dispatching based on the output format configured.
func PrintBurnResult(result schema.BurnResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)
	noun := string(result.Mode)

	var err error
	switch cfg.Output {
	case schema.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON "+noun)
	case schema.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBurnCSV(w, result, fmtFloat)
		}, "Wrote CSV "+noun)
	case schema.ParquetOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.BurnRows(result))
		}, "Wrote Parquet "+noun)
	case schema.HTMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBurnChart(w, result)
		}, "Wrote HTML "+noun)
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBurnTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote "+noun+" table")
	}
	if err != nil {
		return fmt.Errorf("error writing %s output: %w", noun, err)
	}
	return nil
}

// PrintFlowResult outputs a cumulative flow, dispatching based on the output format configured.
func PrintFlowResult(result schema.FlowResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	var err error
	switch cfg.Output {
	case schema.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON flow")
	case schema.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFlowCSV(w, result, fmtFloat)
		}, "Wrote CSV flow")
	case schema.ParquetOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.FlowRows(result))
		}, "Wrote Parquet flow")
	case schema.HTMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFlowChart(w, result)
		}, "Wrote HTML flow")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFlowTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote flow table")
	}
	if err != nil {
		return fmt.Errorf("error writing flow output: %w", err)
	}
	return nil
}

// PrintTaskDeltas outputs the per-step burndown of a task.
func PrintTaskDeltas(result schema.TaskDeltasResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	var err error
	switch cfg.Output {
	case schema.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON task deltas")
	case schema.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTaskDeltasCSV(w, result, fmtFloat)
		}, "Wrote CSV task deltas")
	case schema.ParquetOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.TaskDeltaRows(result))
		}, "Wrote Parquet task deltas")
	case schema.HTMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTaskDeltasChart(w, result)
		}, "Wrote HTML task deltas")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTaskDeltasTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote task deltas table")
	}
	if err != nil {
		return fmt.Errorf("error writing task deltas output: %w", err)
	}
	return nil
}

// PrintPointMessage outputs the description of a single point.
// Parquet and HTML have no sensible shape for one record, so they fall back to JSON.
func PrintPointMessage(msg schema.PointMessage, cfg *contract.Config) error {
	var err error
	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut, schema.HTMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, msg)
		}, "Wrote JSON point message")
	case schema.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMessageCSV(w, msg)
		}, "Wrote CSV point message")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMessageTable(w, msg, cfg)
		}, "Wrote point message table")
	}
	if err != nil {
		return fmt.Errorf("error writing point message output: %w", err)
	}
	return nil
}
