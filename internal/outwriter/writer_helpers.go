package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the hour formatter shared by the table and CSV writers.
func createFormatters(precision int) (fmtFloat func(float64) string) {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// kindLabel picks the colored or plain kind label based on configuration.
func kindLabel(kind schema.PointKind, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorKindLabel(kind)
	}
	return contract.GetPlainKindLabel(kind)
}

// sourceLabel renders a point's source id, blank when the point has none.
func sourceLabel(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// headerTitle returns the banner printed above a table.
func headerTitle(title, emoji string, cfg *contract.Config) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}

// scopeTitle names a scope for headers, e.g. "Sprint 10 (Sprint 1)".
func scopeTitle(scope schema.Scope) string {
	kind := "Sprint"
	if scope.Kind == schema.ProjectScope {
		kind = "Project"
	}
	if scope.Name == "" {
		return fmt.Sprintf("%s %d", kind, scope.ID)
	}
	return fmt.Sprintf("%s %d (%s)", kind, scope.ID, scope.Name)
}
