package outwriter

import (
	"os"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the configured width override, the detected
// terminal width, or 80 when neither is available.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxValueWidth calculates the room left for the value column of the
// point message table.
func getMaxValueWidth(cfg *contract.Config) int {
	// Field column plus borders, separators and padding
	available := getTerminalWidth(cfg) - 20
	if available < 20 {
		return 20
	}
	if available > 100 {
		return 100
	}
	return available
}
