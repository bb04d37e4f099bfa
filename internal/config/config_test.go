package config

import (
	"os"
	"path/filepath"
	"testing"

	"leaderboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	saved := &Settings{
		ScoringType:   string(models.ScoringTypeMaximization),
		ScorerCommand: []string{"./vis"},
	}
	require.NoError(t, SaveSettings(path, saved))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, saved.ScoringType, loaded.ScoringType)
	assert.Equal(t, saved.ScorerCommand, loaded.ScorerCommand)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	leaderboardDir := filepath.Join(dir, "leader_board")
	require.NoError(t, os.MkdirAll(leaderboardDir, 0o755))

	t.Setenv("LEADERBOARD_DIR", leaderboardDir)

	t.Run("fails before setup", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	require.NoError(t, SaveSettings(filepath.Join(leaderboardDir, "config.yaml"), &Settings{
		ScoringType: string(models.ScoringTypeMinimization),
	}))

	t.Run("resolves paths and defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, models.ScoringTypeMinimization, cfg.Scoring.Type)
		assert.Equal(t, filepath.Join(leaderboardDir, "leader_board.db"), cfg.Paths.DatabasePath)
		assert.Equal(t, filepath.Join(leaderboardDir, "top"), cfg.Paths.TopDir)
		assert.Equal(t, defaultScorerCommand, cfg.Runner.Command)
	})

	t.Run("scorer command override from environment", func(t *testing.T) {
		t.Setenv("LEADERBOARD_SCORER_COMMAND", "./my-scorer --fast")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"./my-scorer", "--fast"}, cfg.Runner.Command)
	})

	t.Run("rejects unknown scoring type", func(t *testing.T) {
		require.NoError(t, SaveSettings(filepath.Join(leaderboardDir, "config.yaml"), &Settings{
			ScoringType: "Average",
		}))
		_, err := Load()
		assert.Error(t, err)
	})
}
