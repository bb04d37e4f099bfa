package database

import (
	"context"
	"errors"
	"fmt"

	"leaderboard/internal/models"

	"gorm.io/gorm"
)

type TestCaseResultRepository struct {
	db *gorm.DB
}

func NewTestCaseResultRepository(db *gorm.DB) *TestCaseResultRepository {
	return &TestCaseResultRepository{db: db}
}

// Insert records one test case's absolute score for a submission. A nil
// score is stored as NULL and marks a failed run.
func (r *TestCaseResultRepository) Insert(ctx context.Context, testCaseName string, absoluteScore *int64, scoreHistoryID int64) error {
	result := &models.TestCaseResult{
		TestCaseName:   testCaseName,
		AbsoluteScore:  absoluteScore,
		ScoreHistoryID: scoreHistoryID,
	}
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to insert test case result: %w", err)
	}
	return nil
}

// FetchAbsoluteScore returns the stored absolute score for one (test case,
// submission) pair. A missing row is ErrNotFound: every submission is
// expected to carry a result for every test case it ran.
func (r *TestCaseResultRepository) FetchAbsoluteScore(ctx context.Context, testCaseName string, scoreHistoryID int64) (*int64, error) {
	var result models.TestCaseResult
	err := r.db.WithContext(ctx).
		Where("test_case_name = ? AND score_history_id = ?", testCaseName, scoreHistoryID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no result for test case %q in submission %d",
				ErrNotFound, testCaseName, scoreHistoryID)
		}
		return nil, err
	}
	return result.AbsoluteScore, nil
}

// FetchDetails returns every test case result of a submission, left-joined
// with the current best score for each case, ordered by test case name.
func (r *TestCaseResultRepository) FetchDetails(ctx context.Context, scoreHistoryID int64) ([]models.DetailRecord, error) {
	var records []models.DetailRecord
	err := r.db.WithContext(ctx).
		Table("test_case_results AS tc").
		Select("tc.test_case_name, tc.absolute_score, ts.top_absolute_score").
		Joins("LEFT JOIN top_scores AS ts ON ts.test_case_name = tc.test_case_name").
		Where("tc.score_history_id = ?", scoreHistoryID).
		Order("tc.test_case_name ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
