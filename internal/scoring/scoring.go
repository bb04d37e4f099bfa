// Package scoring implements the contest's scoring policy: the comparison
// semantics for absolute scores and their normalization onto the fixed
// 0..10^9 relative-score scale.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"leaderboard/internal/models"
)

const (
	// MaxScore is the relative score of a submission that matches the best
	// known absolute score for a test case.
	MaxScore = 1_000_000_000

	// MinScore is the relative score of a failed run.
	MinScore = 0
)

// ErrInvalidScorePair reports a relative-score computation whose inputs break
// the engine's invariants: a non-positive score, or a candidate that beats
// the reference it is supposed to be normalized against. Both indicate a bug
// in the bookkeeping, not bad user input.
var ErrInvalidScorePair = errors.New("invalid score pair for relative score")

// Policy defines how two absolute scores compare and how a candidate score
// relates to a reference. Exactly one variant is active per leaderboard,
// chosen at setup time and persisted in configuration.
type Policy interface {
	Type() models.ScoringType
	// ScoreRatio returns candidate's quality as a fraction of reference's,
	// in (0, 1] when reference is at least as good as candidate.
	ScoreRatio(candidate, reference int64) float64
	// Compare reports whether candidate is strictly better than reference.
	Compare(candidate, reference int64) bool
}

// Maximization scores: higher is better.
type Maximization struct{}

func (Maximization) Type() models.ScoringType { return models.ScoringTypeMaximization }

func (Maximization) ScoreRatio(candidate, reference int64) float64 {
	return float64(candidate) / float64(reference)
}

func (Maximization) Compare(candidate, reference int64) bool {
	return candidate > reference
}

// Minimization scores: lower is better.
type Minimization struct{}

func (Minimization) Type() models.ScoringType { return models.ScoringTypeMinimization }

func (Minimization) ScoreRatio(candidate, reference int64) float64 {
	return float64(reference) / float64(candidate)
}

func (Minimization) Compare(candidate, reference int64) bool {
	return candidate < reference
}

func NewPolicy(scoringType models.ScoringType) (Policy, error) {
	switch scoringType {
	case models.ScoringTypeMaximization:
		return Maximization{}, nil
	case models.ScoringTypeMinimization:
		return Minimization{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring type: %q", scoringType)
	}
}

// Calculator derives relative scores, comparisons, and retroactive deltas
// from a Policy. Nil scores model failed runs; a nil reference means no
// submission has ever produced a valid score for the test case.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) Calculator {
	return Calculator{policy: policy}
}

func (c Calculator) Policy() Policy {
	return c.policy
}

// IsBetter reports whether candidate beats reference. Anything beats a nil
// reference; a nil candidate beats nothing.
func (c Calculator) IsBetter(candidate, reference *int64) bool {
	if reference == nil {
		return true
	}
	if candidate == nil {
		return false
	}
	return c.policy.Compare(*candidate, *reference)
}

// RelativeScore normalizes candidate against reference onto the 0..10^9
// scale. The first valid score ever seen for a test case is its own
// reference and scores MaxScore; a failed run scores MinScore. reference
// must be at least as good as candidate, since it is always the best score
// known at judgement time.
func (c Calculator) RelativeScore(candidate, reference *int64) (int64, error) {
	if reference == nil {
		return MaxScore, nil
	}
	if candidate == nil {
		return MinScore, nil
	}
	if *candidate <= 0 || *reference <= 0 {
		return 0, fmt.Errorf("%w: candidate=%d reference=%d must be positive",
			ErrInvalidScorePair, *candidate, *reference)
	}
	if *candidate != *reference && !c.policy.Compare(*reference, *candidate) {
		return 0, fmt.Errorf("%w: candidate=%d beats reference=%d",
			ErrInvalidScorePair, *candidate, *reference)
	}
	return int64(math.Round(MaxScore * c.policy.ScoreRatio(*candidate, *reference))), nil
}

// RelativeScoreDelta returns the change in candidate's relative score caused
// by the reference moving from oldReference to newReference.
func (c Calculator) RelativeScoreDelta(candidate, newReference, oldReference *int64) (int64, error) {
	newScore, err := c.RelativeScore(candidate, newReference)
	if err != nil {
		return 0, fmt.Errorf("failed to compute relative score against new reference: %w", err)
	}
	oldScore, err := c.RelativeScore(candidate, oldReference)
	if err != nil {
		return 0, fmt.Errorf("failed to compute relative score against old reference: %w", err)
	}
	return newScore - oldScore, nil
}
