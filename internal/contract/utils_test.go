package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func TestGetPlainKindLabel(t *testing.T) {
	tests := []struct {
		kind     schema.PointKind
		expected string
	}{
		{schema.NewTaskPoint, "New task"},
		{schema.ScopeChangePoint, "Scope change"},
		{schema.StageChangePoint, "Stage change"},
		{schema.WorkLoggedPoint, "Work logged"},
		{schema.InitialPoint, "Initial"},
		{schema.PointKind(99), "kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainKindLabel(tt.kind))
			assert.Contains(t, GetColorKindLabel(tt.kind), tt.expected)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "out.csv")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		require.NoError(t, file.Close())

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	history := GetHistoryDBFilePath()
	cache := GetCacheDBFilePath()

	assert.Contains(t, history, ".burndown_history.db")
	assert.Contains(t, cache, ".burndown_cache.db")
	assert.True(t, strings.HasPrefix(history, homeDir), "path %s should start with home dir %s", history, homeDir)
	assert.NotEqual(t, history, cache)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Login page", TruncateText("Login page", 20))
	assert.Equal(t, "Login...", TruncateText("Login page", 8))
	assert.Equal(t, "Résu...", TruncateText("Résumé builder", 7))
	assert.Equal(t, "Login page", TruncateText("Login page", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", " Yes "} {
		got, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
