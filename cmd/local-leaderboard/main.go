package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"leaderboard/internal/archive"
	"leaderboard/internal/config"
	"leaderboard/internal/database"
	"leaderboard/internal/models"
	"leaderboard/internal/runner"
	"leaderboard/internal/scoring"
	"leaderboard/internal/setup"
	"leaderboard/internal/submit"
	"leaderboard/internal/view"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "local-leaderboard",
		Short:         "Personal leaderboard for iterative optimization-contest submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSetupCommand())
	root.AddCommand(newSubmitCommand())
	root.AddCommand(newViewCommand())
	return root
}

func newSetupCommand() *cobra.Command {
	var scoringType string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initialize the leaderboard directories, database, and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := models.ScoringType(scoringType)
			if st != models.ScoringTypeMaximization && st != models.ScoringTypeMinimization {
				return fmt.Errorf("invalid --scoring-type %q (use Maximization or Minimization)", scoringType)
			}

			initializer := setup.NewInitializer(config.LoadPaths(), st)
			if err := initializer.Execute(); err != nil {
				return fmt.Errorf("failed to set up leaderboard: %w", err)
			}

			log.Printf("Leaderboard initialized")
			return nil
		},
	}

	cmd.Flags().StringVar(&scoringType, "scoring-type", string(models.ScoringTypeMinimization),
		"Scoring semantics: Maximization or Minimization")
	return cmd
}

func newSubmitCommand() *cobra.Command {
	var submitDir string
	var skipDuplicate bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Score a submission's outputs and record it on the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, db, calc, err := openLeaderboard()
			if err != nil {
				return err
			}
			defer db.Close()

			scorer := runner.NewCommandScorer(cfg.Runner.Command)
			cases, err := runner.NewRunner(scorer, cfg.Paths.InputDir, submitDir).Run(ctx)
			if err != nil {
				return err
			}

			archiver := archive.NewArchiver(cfg.Paths.TopDir)
			submitter := submit.NewSubmitter(db, calc, archiver)

			record, err := submitter.Execute(ctx, cases, skipDuplicate)
			if err != nil {
				return fmt.Errorf("failed to submit: %w", err)
			}
			if record == nil {
				log.Printf("Identical submission already recorded, skipping")
				return nil
			}

			viewer := view.NewViewer(db.Store(), calc, os.Stdout)
			return viewer.ShowLatestDetail(ctx)
		},
	}

	cmd.Flags().StringVar(&submitDir, "submit-file", "out", "Directory holding the submission's output files")
	cmd.Flags().BoolVar(&skipDuplicate, "skip-duplicate", false,
		"Skip ingestion when an identical submission is already recorded")
	return cmd
}

func newViewCommand() *cobra.Command {
	var detail string

	cmd := &cobra.Command{
		Use:   "view [limit]",
		Short: "View score history and test case details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			limit := 10
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed <= 0 {
					return fmt.Errorf("invalid limit %q", args[0])
				}
				limit = parsed
			}

			_, db, calc, err := openLeaderboard()
			if err != nil {
				return err
			}
			defer db.Close()

			viewer := view.NewViewer(db.Store(), calc, os.Stdout)

			if detail == "" {
				return viewer.ShowSummaryList(ctx, limit)
			}

			switch detail {
			case "latest":
				return viewer.ShowLatestDetail(ctx)
			case "top":
				return viewer.ShowTopDetail(ctx)
			default:
				id, err := strconv.ParseInt(detail, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid --detail %q (use a submission id, latest, or top)", detail)
				}
				return viewer.ShowDetail(ctx, id)
			}
		},
	}

	cmd.Flags().StringVar(&detail, "detail", "",
		"Show details for a submission (id, latest, or top)")
	return cmd
}

// openLeaderboard loads configuration and opens the database. It fails with
// a setup hint when the leaderboard has not been initialized.
func openLeaderboard() (*config.Config, *database.GormDB, scoring.Calculator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, scoring.Calculator{}, fmt.Errorf("leaderboard is not set up (run 'local-leaderboard setup'): %w", err)
	}

	if _, err := os.Stat(cfg.Paths.DatabasePath); err != nil {
		return nil, nil, scoring.Calculator{}, fmt.Errorf("database %q not found (run 'local-leaderboard setup')", cfg.Paths.DatabasePath)
	}

	db, err := database.NewGormConnection(cfg.Paths.DatabasePath)
	if err != nil {
		return nil, nil, scoring.Calculator{}, err
	}

	policy, err := scoring.NewPolicy(cfg.Scoring.Type)
	if err != nil {
		db.Close()
		return nil, nil, scoring.Calculator{}, err
	}

	return cfg, db, scoring.NewCalculator(policy), nil
}
