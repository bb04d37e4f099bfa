package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"leaderboard/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config carries everything the process needs for one invocation: where the
// leaderboard state lives and how submissions are scored.
type Config struct {
	Paths   PathsConfig
	Scoring ScoringConfig
	Runner  RunnerConfig
}

type PathsConfig struct {
	// LeaderboardDir holds the database, the persisted settings file, and
	// the top-score archive.
	LeaderboardDir string
	DatabasePath   string
	SettingsPath   string
	TopDir         string
	// InputDir holds the contest's test case input files.
	InputDir string
}

type ScoringConfig struct {
	Type models.ScoringType
}

type RunnerConfig struct {
	// Command scores one test case; input and output paths are appended.
	Command []string
}

// Settings is the YAML file persisted in the leaderboard directory at setup
// time. The scoring type is immutable for the leaderboard's lifetime.
type Settings struct {
	ScoringType   string   `yaml:"scoring_type"`
	ScorerCommand []string `yaml:"scorer_command,omitempty"`
}

var defaultScorerCommand = []string{"cargo", "run", "-r", "--bin", "vis"}

// Load resolves paths from the environment and reads the persisted settings
// file. It fails if the leaderboard has not been set up yet.
func Load() (*Config, error) {
	paths := LoadPaths()

	settings, err := LoadSettings(paths.SettingsPath)
	if err != nil {
		return nil, err
	}

	scoringType := models.ScoringType(settings.ScoringType)
	switch scoringType {
	case models.ScoringTypeMaximization, models.ScoringTypeMinimization:
	default:
		return nil, fmt.Errorf("invalid scoring_type %q in %s", settings.ScoringType, paths.SettingsPath)
	}

	command := settings.ScorerCommand
	if len(command) == 0 {
		command = defaultScorerCommand
	}
	if value := os.Getenv("LEADERBOARD_SCORER_COMMAND"); value != "" {
		command = strings.Fields(value)
	}

	return &Config{
		Paths:   paths,
		Scoring: ScoringConfig{Type: scoringType},
		Runner:  RunnerConfig{Command: command},
	}, nil
}

// LoadPaths resolves the directory layout from the environment with
// defaults, without touching the settings file. Used by setup before any
// state exists.
func LoadPaths() PathsConfig {
	_ = godotenv.Load()

	leaderboardDir := getEnv("LEADERBOARD_DIR", "leader_board")
	return PathsConfig{
		LeaderboardDir: leaderboardDir,
		DatabasePath:   filepath.Join(leaderboardDir, "leader_board.db"),
		SettingsPath:   filepath.Join(leaderboardDir, "config.yaml"),
		TopDir:         filepath.Join(leaderboardDir, "top"),
		InputDir:       getEnv("LEADERBOARD_INPUT_DIR", "in"),
	}
}

func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %q: %w", path, err)
	}
	return &settings, nil
}

func SaveSettings(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file %q: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
