package models

// TestCase is one evaluated test case of an incoming submission, before any
// of it is persisted. Score is nil when the external scorer failed to produce
// a valid score. OutputPath points at the submission's output file so it can
// be archived when the case's best score is beaten.
type TestCase struct {
	Name       string
	Score      *int64
	OutputPath string
}

// SumScore returns the total absolute score of the given cases, counting a
// nil score as zero.
func SumScore(cases []TestCase) int64 {
	var sum int64
	for _, tc := range cases {
		if tc.Score != nil {
			sum += *tc.Score
		}
	}
	return sum
}

// DetailRecord is one test case result of a submission joined with the
// current best score for that case.
type DetailRecord struct {
	TestCaseName     string `json:"test_case_name"`
	AbsoluteScore    *int64 `json:"absolute_score"`
	TopAbsoluteScore *int64 `json:"top_absolute_score"`
}

// TopDetailRecord is one test case's current best score and the submission
// that set it.
type TopDetailRecord struct {
	TestCaseName     string `json:"test_case_name"`
	TopAbsoluteScore *int64 `json:"top_absolute_score"`
	ScoreHistoryID   *int64 `json:"score_history_id"`
}

// UpdatedTopScore carries one drained entry of the top-score changelist: a
// test case whose best changed in the latest ingestion, with the new best and
// the best it replaced.
type UpdatedTopScore struct {
	TestCaseName     string
	TopAbsoluteScore *int64
	SecondTopScore   *int64
}

// TopSummary aggregates all top-score rows: the sum of known bests, the
// number of tracked test cases, and how many of them have no valid best.
type TopSummary struct {
	TotalAbsoluteScore int64
	TestCaseCount      int64
	InvalidScoreCount  int64
}
