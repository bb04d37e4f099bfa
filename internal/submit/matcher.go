package submit

import (
	"context"
	"fmt"

	"leaderboard/internal/database"
	"leaderboard/internal/models"
)

// Matcher detects whether an incoming set of test case scores exactly matches
// a submission already on record, so repeat submissions can be skipped.
//
// The check is approximate: candidates are narrowed by equal total absolute
// score, then every (name, score) pair must match. Two different runs that
// coincide on the sum and on every per-case value are indistinguishable,
// which is accepted for a local tool.
type Matcher struct {
	store *database.Store
}

func NewMatcher(store *database.Store) *Matcher {
	return &Matcher{store: store}
}

// IsAlreadyRecorded reports whether a recorded submission carries exactly the
// same (test case, score) set as cases.
func (m *Matcher) IsAlreadyRecorded(ctx context.Context, cases []models.TestCase) (bool, error) {
	sum := models.SumScore(cases)

	candidates, err := m.store.ScoreHistories.FetchByTotalAbsoluteScore(ctx, sum)
	if err != nil {
		return false, fmt.Errorf("failed to fetch candidate submissions: %w", err)
	}

	scores := make(map[string]*int64, len(cases))
	for _, tc := range cases {
		scores[tc.Name] = tc.Score
	}

	for _, candidate := range candidates {
		details, err := m.store.TestCaseResults.FetchDetails(ctx, candidate.ID)
		if err != nil {
			return false, fmt.Errorf("failed to fetch details for submission %d: %w", candidate.ID, err)
		}
		if matchesAll(details, scores) {
			return true, nil
		}
	}

	return false, nil
}

// matchesAll reports whether the recorded details and the incoming score set
// agree on every pair. A nil score only matches a nil score.
func matchesAll(details []models.DetailRecord, scores map[string]*int64) bool {
	if len(details) != len(scores) {
		return false
	}
	for _, detail := range details {
		score, ok := scores[detail.TestCaseName]
		if !ok {
			return false
		}
		if !equalScores(score, detail.AbsoluteScore) {
			return false
		}
	}
	return true
}

func equalScores(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
