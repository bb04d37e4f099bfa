package submit

import (
	"context"
	"fmt"

	"leaderboard/internal/database"
	"leaderboard/internal/models"
	"leaderboard/internal/scoring"
)

// Archiver copies a submission's output file into the best-scores archive
// when its test case's best is beaten.
type Archiver interface {
	ArchiveBest(testCase models.TestCase) error
}

// TestCaseProcessor evaluates one test case against the tracked best score,
// updates the best when beaten, and records the case's result row.
type TestCaseProcessor struct {
	store    *database.Store
	calc     scoring.Calculator
	archiver Archiver
}

func NewTestCaseProcessor(store *database.Store, calc scoring.Calculator, archiver Archiver) *TestCaseProcessor {
	return &TestCaseProcessor{
		store:    store,
		calc:     calc,
		archiver: archiver,
	}
}

// Process evaluates testCase for the given submission and returns the
// effective reference score: the case's best at the moment the submission was
// judged. When the submission beats the previous best, that is its own score,
// so a self-beat always scores the maximum relative value.
func (p *TestCaseProcessor) Process(ctx context.Context, testCase models.TestCase, scoreHistoryID int64) (*int64, error) {
	topScore, err := p.store.TopScores.FetchTopScore(ctx, testCase.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top score for %q: %w", testCase.Name, err)
	}

	effective := topScore
	if p.calc.IsBetter(testCase.Score, topScore) {
		if err := p.store.TopScores.Upsert(ctx, testCase.Name, testCase.Score, scoreHistoryID); err != nil {
			return nil, fmt.Errorf("failed to update top score for %q: %w", testCase.Name, err)
		}
		if err := p.archiver.ArchiveBest(testCase); err != nil {
			return nil, fmt.Errorf("failed to archive output for %q: %w", testCase.Name, err)
		}
		effective = testCase.Score
	}

	if err := p.store.TestCaseResults.Insert(ctx, testCase.Name, testCase.Score, scoreHistoryID); err != nil {
		return nil, fmt.Errorf("failed to record result for %q: %w", testCase.Name, err)
	}

	return effective, nil
}
