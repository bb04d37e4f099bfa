package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	lowScoreColor    = rgb{255, 0, 0}
	mediumScoreColor = rgb{255, 255, 0}
	highScoreColor   = rgb{0, 255, 0}
)

type rgb struct {
	r, g, b int
}

func (c rgb) color() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b))
}

// FormatOptionalScore renders a nullable absolute score; a failed run shows
// as a highlighted "None".
func FormatOptionalScore(score *int64) string {
	if score == nil {
		return errorStyle.Render("None")
	}
	return strconv.FormatInt(*score, 10)
}

// FormatTotalAbsoluteScore renders a submission's absolute total, appending
// the invalid-case count when any case failed.
func FormatTotalAbsoluteScore(total int64, invalidCount int64) string {
	text := strconv.FormatInt(total, 10)
	if invalidCount > 0 {
		text += errorStyle.Render(fmt.Sprintf(" (%d)", invalidCount))
	}
	return text
}

// FormatScoreDiff renders the distance between an absolute score and the
// case's best. Minimization and maximization flip the sign, so the absolute
// value is shown.
func FormatScoreDiff(absoluteScore, topScore *int64) string {
	if absoluteScore == nil || topScore == nil {
		return errorStyle.Render("None")
	}
	diff := *absoluteScore - *topScore
	if diff < 0 {
		diff = -diff
	}
	return strconv.FormatInt(diff, 10)
}

// FormatRelativeScore renders a relative score on a red-yellow-green
// gradient over 0..maxScore.
func FormatRelativeScore(relativeScore, maxScore int64) string {
	style := lipgloss.NewStyle().Foreground(relativeScoreColor(relativeScore, maxScore).color())
	return style.Render(strconv.FormatInt(relativeScore, 10))
}

// relativeScoreColor maps a relative score to a color: red to yellow below
// the threshold, yellow to green above it. Scores cluster near the top in
// practice, so the interpolation is quadratic to keep the high end
// distinguishable.
func relativeScoreColor(relativeScore, maxScore int64) rgb {
	const thresholdRatio = 0.9

	threshold := float64(maxScore) * thresholdRatio
	if threshold == 0 {
		return highScoreColor
	}

	if float64(relativeScore) <= threshold {
		t := float64(relativeScore) / threshold
		return interpolate(lowScoreColor, mediumScoreColor, t)
	}
	t := (float64(relativeScore) - threshold) / (float64(maxScore) - threshold)
	return interpolate(mediumScoreColor, highScoreColor, t)
}

func interpolate(start, end rgb, t float64) rgb {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	q := t * t
	return rgb{
		r: start.r + int(float64(end.r-start.r)*q),
		g: start.g + int(float64(end.g-start.g)*q),
		b: start.b + int(float64(end.b-start.b)*q),
	}
}
