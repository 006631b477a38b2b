package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Color variables for point kinds in console output.
var (
	NewTaskColor     = color.New(color.FgGreen, color.Bold)
	ScopeChangeColor = color.New(color.FgYellow)
	StageChangeColor = color.New(color.FgMagenta, color.Bold)
	WorkLoggedColor  = color.New(color.FgCyan)
	InitialColor     = color.New(color.Faint)
)

// GetPlainKindLabel returns the label used for a point kind in CSV, JSON and table output.
func GetPlainKindLabel(kind schema.PointKind) string {
	switch kind {
	case schema.NewTaskPoint:
		return "New task"
	case schema.ScopeChangePoint:
		return "Scope change"
	case schema.StageChangePoint:
		return "Stage change"
	case schema.WorkLoggedPoint:
		return "Work logged"
	case schema.InitialPoint:
		return "Initial"
	default:
		return kind.String()
	}
}

// GetColorKindLabel returns a colored kind label for console output (table).
func GetColorKindLabel(kind schema.PointKind) string {
	text := GetPlainKindLabel(kind)
	switch kind {
	case schema.NewTaskPoint:
		return NewTaskColor.Sprint(text)
	case schema.ScopeChangePoint:
		return ScopeChangeColor.Sprint(text)
	case schema.StageChangePoint:
		return StageChangeColor.Sprint(text)
	case schema.WorkLoggedPoint:
		return WorkLoggedColor.Sprint(text)
	case schema.InitialPoint:
		return InitialColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the file handle for output: stdout when filePath is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for the history store.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".burndown_history.db"
	}
	return filepath.Join(homeDir, ".burndown_history.db")
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the series cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".burndown_cache.db"
	}
	return filepath.Join(homeDir, ".burndown_cache.db")
}

// TruncateText shortens s to maxWidth runes, ending it with "...".
// Widths of 3 or less leave s untouched.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
