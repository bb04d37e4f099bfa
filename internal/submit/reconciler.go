package submit

import (
	"context"
	"fmt"
	"sort"

	"leaderboard/internal/database"
	"leaderboard/internal/models"
	"leaderboard/internal/scoring"
)

// Reconciler repairs the relative scores of historical submissions after an
// ingestion changes best scores. Relative scores are defined against the best
// known at query time, so a new best for test case X stales every other
// submission's relative score for X. The reconciler applies deltas for
// exactly the changed cases, then recomputes ranks over the whole history.
type Reconciler struct {
	store *database.Store
	calc  scoring.Calculator
}

func NewReconciler(store *database.Store, calc scoring.Calculator) *Reconciler {
	return &Reconciler{
		store: store,
		calc:  calc,
	}
}

// Apply drains the top-score changelist, adjusts every non-latest
// submission's total relative score by the summed deltas of the changed
// cases, reranks all submissions, and clears the changelist flags.
func (r *Reconciler) Apply(ctx context.Context) error {
	updatedTopScores, err := r.store.TopScores.FetchUpdated(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch updated top scores: %w", err)
	}

	latest, err := r.store.ScoreHistories.FetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch latest submission: %w", err)
	}

	others, err := r.store.ScoreHistories.FetchAllExceptLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch historical submissions: %w", err)
	}

	for i := range others {
		diff, err := r.totalRelativeScoreDiff(ctx, &others[i], updatedTopScores)
		if err != nil {
			return err
		}
		others[i].TotalRelativeScore += diff
	}

	working := make([]models.ScoreHistory, 0, len(others)+1)
	working = append(working, others...)
	working = append(working, *latest)

	assignRelativeRanks(working)

	for i := range working {
		if err := r.store.ScoreHistories.Update(ctx, &working[i]); err != nil {
			return fmt.Errorf("failed to update submission %d: %w", working[i].ID, err)
		}
	}

	if err := r.store.TopScores.ResetUpdatedFlags(ctx); err != nil {
		return fmt.Errorf("failed to reset updated flags: %w", err)
	}

	return nil
}

// totalRelativeScoreDiff sums, over every changed test case, the relative
// score movement record experiences from the best changing. A record lacking
// a result row for a changed case is a data-integrity bug: every submission
// runs every test case.
func (r *Reconciler) totalRelativeScoreDiff(ctx context.Context, record *models.ScoreHistory, updated []models.UpdatedTopScore) (int64, error) {
	var total int64
	for _, top := range updated {
		absoluteScore, err := r.store.TestCaseResults.FetchAbsoluteScore(ctx, top.TestCaseName, record.ID)
		if err != nil {
			return 0, fmt.Errorf("integrity violation reconciling submission %d: %w", record.ID, err)
		}

		diff, err := r.calc.RelativeScoreDelta(absoluteScore, top.TopAbsoluteScore, top.SecondTopScore)
		if err != nil {
			return 0, fmt.Errorf("integrity violation reconciling submission %d against %q: %w",
				record.ID, top.TestCaseName, err)
		}
		total += diff
	}
	return total, nil
}

// assignRelativeRanks orders records by total relative score descending and
// numbers them from 1. Ties break on earlier submission time, so an older
// submission keeps its place ahead of a newer one that merely matched it.
func assignRelativeRanks(records []models.ScoreHistory) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TotalRelativeScore != records[j].TotalRelativeScore {
			return records[i].TotalRelativeScore > records[j].TotalRelativeScore
		}
		return records[i].SubmissionTime.Before(records[j].SubmissionTime)
	})

	for i := range records {
		rank := i + 1
		records[i].RelativeRank = &rank
	}
}
