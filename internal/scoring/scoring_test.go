package scoring

import (
	"testing"

	"leaderboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v int64) *int64 {
	return &v
}

func TestNewPolicy(t *testing.T) {
	maximization, err := NewPolicy(models.ScoringTypeMaximization)
	require.NoError(t, err)
	assert.Equal(t, models.ScoringTypeMaximization, maximization.Type())

	minimization, err := NewPolicy(models.ScoringTypeMinimization)
	require.NoError(t, err)
	assert.Equal(t, models.ScoringTypeMinimization, minimization.Type())

	_, err = NewPolicy(models.ScoringType("Average"))
	assert.Error(t, err)
}

func TestIsBetter(t *testing.T) {
	maxCalc := NewCalculator(Maximization{})
	minCalc := NewCalculator(Minimization{})

	t.Run("nil reference loses to anything", func(t *testing.T) {
		assert.True(t, maxCalc.IsBetter(score(1), nil))
		assert.True(t, maxCalc.IsBetter(nil, nil))
		assert.True(t, minCalc.IsBetter(score(1), nil))
	})

	t.Run("nil candidate beats nothing", func(t *testing.T) {
		assert.False(t, maxCalc.IsBetter(nil, score(1)))
		assert.False(t, minCalc.IsBetter(nil, score(1)))
	})

	t.Run("strict comparison per policy", func(t *testing.T) {
		assert.True(t, maxCalc.IsBetter(score(200), score(100)))
		assert.False(t, maxCalc.IsBetter(score(100), score(100)))
		assert.False(t, maxCalc.IsBetter(score(50), score(100)))

		assert.True(t, minCalc.IsBetter(score(50), score(100)))
		assert.False(t, minCalc.IsBetter(score(100), score(100)))
		assert.False(t, minCalc.IsBetter(score(200), score(100)))
	})
}

func TestRelativeScore(t *testing.T) {
	maxCalc := NewCalculator(Maximization{})
	minCalc := NewCalculator(Minimization{})

	t.Run("nil reference scores maximum", func(t *testing.T) {
		got, err := maxCalc.RelativeScore(score(100), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(MaxScore), got)

		// A failed run on a test case with no best yet still sees a nil
		// reference first.
		got, err = maxCalc.RelativeScore(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(MaxScore), got)
	})

	t.Run("nil candidate scores minimum", func(t *testing.T) {
		got, err := maxCalc.RelativeScore(nil, score(100))
		require.NoError(t, err)
		assert.Equal(t, int64(MinScore), got)
	})

	t.Run("maximization ratio", func(t *testing.T) {
		got, err := maxCalc.RelativeScore(score(50), score(100))
		require.NoError(t, err)
		assert.Equal(t, int64(500_000_000), got)

		got, err = maxCalc.RelativeScore(score(100), score(100))
		require.NoError(t, err)
		assert.Equal(t, int64(MaxScore), got)
	})

	t.Run("minimization ratio", func(t *testing.T) {
		got, err := minCalc.RelativeScore(score(200), score(100))
		require.NoError(t, err)
		assert.Equal(t, int64(500_000_000), got)

		got, err = minCalc.RelativeScore(score(100), score(100))
		require.NoError(t, err)
		assert.Equal(t, int64(MaxScore), got)
	})

	t.Run("non-positive scores are rejected", func(t *testing.T) {
		_, err := maxCalc.RelativeScore(score(0), score(100))
		assert.ErrorIs(t, err, ErrInvalidScorePair)

		_, err = maxCalc.RelativeScore(score(10), score(-5))
		assert.ErrorIs(t, err, ErrInvalidScorePair)
	})

	t.Run("candidate beating reference is an invariant failure", func(t *testing.T) {
		_, err := maxCalc.RelativeScore(score(200), score(100))
		assert.ErrorIs(t, err, ErrInvalidScorePair)

		_, err = minCalc.RelativeScore(score(50), score(100))
		assert.ErrorIs(t, err, ErrInvalidScorePair)
	})
}

func TestRelativeScoreBounds(t *testing.T) {
	maxCalc := NewCalculator(Maximization{})
	reference := score(1000)

	for candidate := int64(1); candidate <= 1000; candidate += 27 {
		got, err := maxCalc.RelativeScore(score(candidate), reference)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, int64(MinScore))
		assert.LessOrEqual(t, got, int64(MaxScore))
		if candidate == *reference {
			assert.Equal(t, int64(MaxScore), got)
		}
	}
}

func TestRelativeScoreMonotonicity(t *testing.T) {
	maxCalc := NewCalculator(Maximization{})
	minCalc := NewCalculator(Minimization{})
	reference := score(1000)

	var prevMax, prevMin int64 = -1, MaxScore + 1
	for candidate := int64(10); candidate <= 1000; candidate += 10 {
		gotMax, err := maxCalc.RelativeScore(score(candidate), reference)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, gotMax, prevMax, "maximization must not decrease as candidate grows")
		prevMax = gotMax

		gotMin, err := minCalc.RelativeScore(score(candidate+1000), score(1000))
		require.NoError(t, err)
		assert.LessOrEqual(t, gotMin, prevMin, "minimization must not increase as candidate grows")
		prevMin = gotMin
	}
}

func TestRelativeScoreDelta(t *testing.T) {
	calc := NewCalculator(Maximization{})

	t.Run("matches definition", func(t *testing.T) {
		candidate := score(100)
		oldRef := score(100)
		newRef := score(200)

		delta, err := calc.RelativeScoreDelta(candidate, newRef, oldRef)
		require.NoError(t, err)

		newScore, err := calc.RelativeScore(candidate, newRef)
		require.NoError(t, err)
		oldScore, err := calc.RelativeScore(candidate, oldRef)
		require.NoError(t, err)

		assert.Equal(t, newScore-oldScore, delta)
		assert.Equal(t, int64(-500_000_000), delta)
	})

	t.Run("nil candidate never moves", func(t *testing.T) {
		delta, err := calc.RelativeScoreDelta(nil, score(200), score(100))
		require.NoError(t, err)
		assert.Equal(t, int64(0), delta)
	})

	t.Run("first best on a test case", func(t *testing.T) {
		// Historical submissions had no valid score, so the old reference
		// was nil; their stored relative was the maximum and drops.
		delta, err := calc.RelativeScoreDelta(score(50), score(200), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(250_000_000)-int64(MaxScore), delta)
	})
}
