// Package setup initializes a leaderboard in the current project: the state
// directories, the database schema, and the persisted settings file.
package setup

import (
	"fmt"
	"os"

	"leaderboard/internal/config"
	"leaderboard/internal/database"
	"leaderboard/internal/models"
)

type Initializer struct {
	paths       config.PathsConfig
	scoringType models.ScoringType
}

func NewInitializer(paths config.PathsConfig, scoringType models.ScoringType) *Initializer {
	return &Initializer{
		paths:       paths,
		scoringType: scoringType,
	}
}

// Execute creates the leaderboard directories, migrates the database, and
// writes the settings file. Existing settings are left untouched, so re-runs
// cannot flip the scoring type of a leaderboard that already has history.
func (i *Initializer) Execute() error {
	for _, dir := range []string{i.paths.LeaderboardDir, i.paths.TopDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	db, err := database.NewGormConnection(i.paths.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		return err
	}

	if _, err := os.Stat(i.paths.SettingsPath); err == nil {
		return nil
	}

	settings := &config.Settings{ScoringType: string(i.scoringType)}
	if err := config.SaveSettings(i.paths.SettingsPath, settings); err != nil {
		return err
	}

	return nil
}
