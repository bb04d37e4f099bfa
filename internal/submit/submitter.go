// Package submit implements the ingestion pipeline: it records one
// submission's test case scores, maintains per-case best scores, and keeps
// every historical submission's relative score and rank consistent with the
// new bests.
package submit

import (
	"context"
	"fmt"
	"time"

	"leaderboard/internal/database"
	"leaderboard/internal/models"
	"leaderboard/internal/scoring"
)

// Submitter ingests one evaluated submission. The whole ingestion - reserve,
// score every case, update bests, reconcile history, rank - runs inside one
// transaction; any failure leaves the store exactly as before the attempt.
type Submitter struct {
	db       *database.GormDB
	calc     scoring.Calculator
	archiver Archiver
}

func NewSubmitter(db *database.GormDB, calc scoring.Calculator, archiver Archiver) *Submitter {
	return &Submitter{
		db:       db,
		calc:     calc,
		archiver: archiver,
	}
}

// Execute ingests cases as one submission. With skipDuplicate set, an exact
// repeat of a recorded submission is skipped before any state changes; the
// returned record is nil in that case.
func (s *Submitter) Execute(ctx context.Context, cases []models.TestCase, skipDuplicate bool) (*models.ScoreHistory, error) {
	if skipDuplicate {
		recorded, err := NewMatcher(s.db.Store()).IsAlreadyRecorded(ctx, cases)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate submission: %w", err)
		}
		if recorded {
			return nil, nil
		}
	}

	var record *models.ScoreHistory
	err := s.db.Transact(ctx, func(store *database.Store) error {
		reserved, err := store.ScoreHistories.Reserve(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to reserve submission: %w", err)
		}

		processor := NewTestCaseProcessor(store, s.calc, s.archiver)
		for _, testCase := range cases {
			reference, err := processor.Process(ctx, testCase, reserved.ID)
			if err != nil {
				return err
			}

			relativeScore, err := s.calc.RelativeScore(testCase.Score, reference)
			if err != nil {
				return fmt.Errorf("failed to score test case %q: %w", testCase.Name, err)
			}

			if testCase.Score != nil {
				reserved.TotalAbsoluteScore += *testCase.Score
			} else {
				reserved.InvalidScoreCount++
			}
			reserved.TotalRelativeScore += relativeScore
		}

		if err := store.ScoreHistories.Update(ctx, reserved); err != nil {
			return fmt.Errorf("failed to finalize submission %d: %w", reserved.ID, err)
		}

		if err := NewReconciler(store, s.calc).Apply(ctx); err != nil {
			return fmt.Errorf("failed to reconcile history: %w", err)
		}

		record = reserved
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
