package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound reports a lookup with no matching row. Callers treat it as a
// hard failure: it indicates either a caller bug or data corruption, never a
// condition to default around.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateTimestamp reports an attempt to reserve a score history row
// with a submission time that is already taken.
var ErrDuplicateTimestamp = errors.New("submission time already recorded")

// Store bundles the three repositories over one gorm handle, which may be a
// plain connection or an open transaction.
type Store struct {
	ScoreHistories  *ScoreHistoryRepository
	TestCaseResults *TestCaseResultRepository
	TopScores       *TopScoreRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		ScoreHistories:  NewScoreHistoryRepository(db),
		TestCaseResults: NewTestCaseResultRepository(db),
		TopScores:       NewTopScoreRepository(db),
	}
}
