package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func score(v int64) *int64 {
	return &v
}

func TestFormatOptionalScore(t *testing.T) {
	assert.Equal(t, "12345", FormatOptionalScore(score(12345)))
	assert.Contains(t, FormatOptionalScore(nil), "None")
}

func TestFormatTotalAbsoluteScore(t *testing.T) {
	assert.Equal(t, "300", FormatTotalAbsoluteScore(300, 0))

	withInvalid := FormatTotalAbsoluteScore(300, 2)
	assert.True(t, strings.HasPrefix(withInvalid, "300"))
	assert.Contains(t, withInvalid, "(2)")
}

func TestFormatScoreDiff(t *testing.T) {
	// The sign of the gap flips between minimization and maximization, so
	// only its magnitude is shown.
	assert.Equal(t, "50", FormatScoreDiff(score(150), score(100)))
	assert.Equal(t, "50", FormatScoreDiff(score(100), score(150)))
	assert.Equal(t, "0", FormatScoreDiff(score(100), score(100)))
	assert.Contains(t, FormatScoreDiff(nil, score(100)), "None")
	assert.Contains(t, FormatScoreDiff(score(100), nil), "None")
}

func TestRelativeScoreColorGradient(t *testing.T) {
	assert.Equal(t, lowScoreColor, relativeScoreColor(0, 1_000_000_000))
	assert.Equal(t, mediumScoreColor, relativeScoreColor(900_000_000, 1_000_000_000))
	assert.Equal(t, highScoreColor, relativeScoreColor(1_000_000_000, 1_000_000_000))

	t.Run("zero max falls back to the high color", func(t *testing.T) {
		assert.Equal(t, highScoreColor, relativeScoreColor(0, 0))
	})

	t.Run("midpoints stay between the endpoints", func(t *testing.T) {
		c := relativeScoreColor(450_000_000, 1_000_000_000)
		assert.Equal(t, 255, c.r)
		assert.GreaterOrEqual(t, c.g, 0)
		assert.LessOrEqual(t, c.g, 255)
	})
}
