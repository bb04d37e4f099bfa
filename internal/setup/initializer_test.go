package setup

import (
	"os"
	"path/filepath"
	"testing"

	"leaderboard/internal/config"
	"leaderboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaths(t *testing.T) config.PathsConfig {
	t.Helper()
	dir := t.TempDir()
	leaderboardDir := filepath.Join(dir, "leader_board")
	return config.PathsConfig{
		LeaderboardDir: leaderboardDir,
		DatabasePath:   filepath.Join(leaderboardDir, "leader_board.db"),
		SettingsPath:   filepath.Join(leaderboardDir, "config.yaml"),
		TopDir:         filepath.Join(leaderboardDir, "top"),
		InputDir:       filepath.Join(dir, "in"),
	}
}

func TestInitializerCreatesEverything(t *testing.T) {
	paths := testPaths(t)

	initializer := NewInitializer(paths, models.ScoringTypeMaximization)
	require.NoError(t, initializer.Execute())

	assert.DirExists(t, paths.LeaderboardDir)
	assert.DirExists(t, paths.TopDir)
	assert.FileExists(t, paths.DatabasePath)

	settings, err := config.LoadSettings(paths.SettingsPath)
	require.NoError(t, err)
	assert.Equal(t, string(models.ScoringTypeMaximization), settings.ScoringType)
}

func TestInitializerPreservesExistingSettings(t *testing.T) {
	paths := testPaths(t)

	require.NoError(t, NewInitializer(paths, models.ScoringTypeMaximization).Execute())

	// A re-run with a different scoring type must not rewrite the settings
	// of a leaderboard that may already have history.
	require.NoError(t, NewInitializer(paths, models.ScoringTypeMinimization).Execute())

	settings, err := config.LoadSettings(paths.SettingsPath)
	require.NoError(t, err)
	assert.Equal(t, string(models.ScoringTypeMaximization), settings.ScoringType)
}

func TestInitializerIsIdempotentForDatabase(t *testing.T) {
	paths := testPaths(t)

	require.NoError(t, NewInitializer(paths, models.ScoringTypeMinimization).Execute())
	info, err := os.Stat(paths.DatabasePath)
	require.NoError(t, err)

	require.NoError(t, NewInitializer(paths, models.ScoringTypeMinimization).Execute())
	again, err := os.Stat(paths.DatabasePath)
	require.NoError(t, err)
	assert.Equal(t, info.Mode(), again.Mode())
}
