package database

import (
	"context"
	"errors"
	"fmt"

	"leaderboard/internal/models"

	"gorm.io/gorm"
)

type TopScoreRepository struct {
	db *gorm.DB
}

func NewTopScoreRepository(db *gorm.DB) *TopScoreRepository {
	return &TopScoreRepository{db: db}
}

// Upsert records a new best score for a test case. The previous best becomes
// the second-top score, the row is flagged updated for the reconciler, and
// ownership moves to the submission that set it.
func (r *TopScoreRepository) Upsert(ctx context.Context, testCaseName string, absoluteScore *int64, scoreHistoryID int64) error {
	var existing models.TopScore
	err := r.db.WithContext(ctx).
		Where("test_case_name = ?", testCaseName).
		First(&existing).Error

	switch {
	case err == nil:
		return r.db.WithContext(ctx).
			Model(&models.TopScore{}).
			Where("test_case_name = ?", testCaseName).
			Updates(map[string]interface{}{
				"top_absolute_score": absoluteScore,
				"second_top_score":   existing.TopAbsoluteScore,
				"is_updated":         true,
				"score_history_id":   scoreHistoryID,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := &models.TopScore{
			TestCaseName:     testCaseName,
			TopAbsoluteScore: absoluteScore,
			SecondTopScore:   nil,
			IsUpdated:        true,
			ScoreHistoryID:   &scoreHistoryID,
		}
		if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
			return fmt.Errorf("failed to create top score: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to fetch top score: %w", err)
	}
}

// FetchTopScore returns the current best for a test case, nil if no row or
// no valid best exists.
func (r *TopScoreRepository) FetchTopScore(ctx context.Context, testCaseName string) (*int64, error) {
	var record models.TopScore
	err := r.db.WithContext(ctx).
		Where("test_case_name = ?", testCaseName).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.TopAbsoluteScore, nil
}

// FetchUpdated drains a read of the changelist: every test case whose best
// changed since the flags were last reset.
func (r *TopScoreRepository) FetchUpdated(ctx context.Context) ([]models.UpdatedTopScore, error) {
	var records []models.TopScore
	err := r.db.WithContext(ctx).
		Where("is_updated = ?", true).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	updated := make([]models.UpdatedTopScore, 0, len(records))
	for _, record := range records {
		updated = append(updated, models.UpdatedTopScore{
			TestCaseName:     record.TestCaseName,
			TopAbsoluteScore: record.TopAbsoluteScore,
			SecondTopScore:   record.SecondTopScore,
		})
	}
	return updated, nil
}

// ResetUpdatedFlags clears the changelist in one statement.
func (r *TopScoreRepository) ResetUpdatedFlags(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.TopScore{}).
		Where("is_updated = ?", true).
		Update("is_updated", false).Error
}

func (r *TopScoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TopScore{}).
		Count(&count).Error
	return count, err
}

// FetchSummary aggregates all top-score rows: sum of known bests, number of
// tracked cases, and how many cases have no valid best.
func (r *TopScoreRepository) FetchSummary(ctx context.Context) (*models.TopSummary, error) {
	var summary models.TopSummary
	err := r.db.WithContext(ctx).
		Model(&models.TopScore{}).
		Select("COALESCE(SUM(top_absolute_score), 0) AS total_absolute_score, " +
			"COUNT(*) AS test_case_count, " +
			"COUNT(*) - COUNT(top_absolute_score) AS invalid_score_count").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchAllDetails returns every test case's best score and owning
// submission, ordered by test case name.
func (r *TopScoreRepository) FetchAllDetails(ctx context.Context) ([]models.TopDetailRecord, error) {
	var records []models.TopScore
	err := r.db.WithContext(ctx).
		Order("test_case_name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	details := make([]models.TopDetailRecord, 0, len(records))
	for _, record := range records {
		details = append(details, models.TopDetailRecord{
			TestCaseName:     record.TestCaseName,
			TopAbsoluteScore: record.TopAbsoluteScore,
			ScoreHistoryID:   record.ScoreHistoryID,
		})
	}
	return details, nil
}
