package models

import (
	"time"
)

type ScoringType string

const (
	ScoringTypeMaximization ScoringType = "Maximization"
	ScoringTypeMinimization ScoringType = "Minimization"
)

// ScoreHistory is one accepted submission: a full run over every known test
// case, together with its aggregate scores and rank among all submissions.
type ScoreHistory struct {
	ID                 int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	SubmissionTime     time.Time        `json:"submission_time" gorm:"not null;uniqueIndex"`
	TotalAbsoluteScore int64            `json:"total_absolute_score" gorm:"not null;default:0"`
	TotalRelativeScore int64            `json:"total_relative_score" gorm:"not null;default:0"`
	InvalidScoreCount  int              `json:"invalid_score_count" gorm:"not null;default:0"`
	RelativeRank       *int             `json:"relative_rank"`
	TestCaseResults    []TestCaseResult `json:"test_case_results,omitempty" gorm:"foreignKey:ScoreHistoryID;constraint:OnDelete:CASCADE"`
}

// TestCaseResult holds one test case's absolute score within one submission.
// AbsoluteScore is nil when the run produced no valid score for the case.
type TestCaseResult struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TestCaseName   string `json:"test_case_name" gorm:"size:255;not null;uniqueIndex:idx_result_case_history"`
	AbsoluteScore  *int64 `json:"absolute_score"`
	ScoreHistoryID int64  `json:"score_history_id" gorm:"not null;uniqueIndex:idx_result_case_history"`
}

// TopScore tracks the best absolute score ever observed for a test case.
// SecondTopScore keeps the value TopAbsoluteScore held before the most recent
// update so retroactive relative-score deltas can be computed against it.
// IsUpdated marks rows changed by the current ingestion until the reconciler
// drains them.
type TopScore struct {
	TestCaseName     string `json:"test_case_name" gorm:"primaryKey;size:255"`
	TopAbsoluteScore *int64 `json:"top_absolute_score"`
	SecondTopScore   *int64 `json:"second_top_score"`
	IsUpdated        bool   `json:"is_updated" gorm:"not null;default:false"`
	ScoreHistoryID   *int64 `json:"score_history_id"`
}
