package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"leaderboard/internal/models"

	"gorm.io/gorm"
)

type ScoreHistoryRepository struct {
	db *gorm.DB
}

func NewScoreHistoryRepository(db *gorm.DB) *ScoreHistoryRepository {
	return &ScoreHistoryRepository{db: db}
}

// Reserve inserts an empty score history row for the given submission time
// and returns it with its assigned id. Submission times are unique; a clash
// surfaces as ErrDuplicateTimestamp and the caller should retry with a fresh
// high-resolution timestamp.
func (r *ScoreHistoryRepository) Reserve(ctx context.Context, submissionTime time.Time) (*models.ScoreHistory, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScoreHistory{}).
		Where("submission_time = ?", submissionTime).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check submission time: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTimestamp, submissionTime)
	}

	record := &models.ScoreHistory{SubmissionTime: submissionTime}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTimestamp, submissionTime)
		}
		return nil, fmt.Errorf("failed to reserve score history: %w", err)
	}

	return record, nil
}

// Update persists the mutable fields of a score history row by id.
func (r *ScoreHistoryRepository) Update(ctx context.Context, record *models.ScoreHistory) error {
	return r.db.WithContext(ctx).
		Model(&models.ScoreHistory{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"total_absolute_score": record.TotalAbsoluteScore,
			"total_relative_score": record.TotalRelativeScore,
			"invalid_score_count":  record.InvalidScoreCount,
			"relative_rank":        record.RelativeRank,
		}).Error
}

func (r *ScoreHistoryRepository) Fetch(ctx context.Context, id int64) (*models.ScoreHistory, error) {
	var record models.ScoreHistory
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: score history %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &record, nil
}

// FetchAll returns every score history row ordered by submission time,
// oldest first.
//
// Ordering happens here rather than in SQL: the serialized timestamp's
// fractional seconds have variable width, so lexical ORDER BY on the stored
// column can misorder rows.
func (r *ScoreHistoryRepository) FetchAll(ctx context.Context) ([]models.ScoreHistory, error) {
	var records []models.ScoreHistory
	err := r.db.WithContext(ctx).Find(&records).Error
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmissionTime.Before(records[j].SubmissionTime)
	})
	return records, nil
}

// FetchLatest returns the score history row with the newest submission time.
func (r *ScoreHistoryRepository) FetchLatest(ctx context.Context) (*models.ScoreHistory, error) {
	records, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no score history recorded", ErrNotFound)
	}
	latest := records[len(records)-1]
	return &latest, nil
}

// FetchLatestN returns the newest limit rows, newest first.
func (r *ScoreHistoryRepository) FetchLatestN(ctx context.Context, limit int) ([]models.ScoreHistory, error) {
	records, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	newest := make([]models.ScoreHistory, 0, limit)
	for i := len(records) - 1; i >= 0 && len(newest) < limit; i-- {
		newest = append(newest, records[i])
	}
	return newest, nil
}

// FetchAllExceptLatest returns every row but the one with the newest
// submission time, oldest first. Used by the reconciler, whose deltas never
// apply to the submission just ingested.
func (r *ScoreHistoryRepository) FetchAllExceptLatest(ctx context.Context) ([]models.ScoreHistory, error) {
	records, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}
	return records[:len(records)-1], nil
}

// FetchByTotalAbsoluteScore returns all rows whose total absolute score
// equals sum. Candidate set for the duplicate-submission check.
func (r *ScoreHistoryRepository) FetchByTotalAbsoluteScore(ctx context.Context, sum int64) ([]models.ScoreHistory, error) {
	var records []models.ScoreHistory
	err := r.db.WithContext(ctx).
		Where("total_absolute_score = ?", sum).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ScoreHistoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScoreHistory{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
