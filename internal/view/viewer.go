// Package view renders leaderboard state as terminal tables. It only reads
// from the store.
package view

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"leaderboard/internal/database"
	"leaderboard/internal/scoring"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const timeFormat = "2006-01-02 15:04:05"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Viewer struct {
	store *database.Store
	calc  scoring.Calculator
	out   io.Writer
}

func NewViewer(store *database.Store, calc scoring.Calculator, out io.Writer) *Viewer {
	return &Viewer{
		store: store,
		calc:  calc,
		out:   out,
	}
}

// ShowSummaryList renders the newest limit submissions plus a synthetic
// "Top" row built from the best score of every test case.
func (v *Viewer) ShowSummaryList(ctx context.Context, limit int) error {
	topSummary, err := v.store.TopScores.FetchSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch top summary: %w", err)
	}

	records, err := v.store.ScoreHistories.FetchLatestN(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch score histories: %w", err)
	}

	// The gradient tops out at every test case scoring the maximum.
	maxRelative := topSummary.TestCaseCount * scoring.MaxScore

	t := newTable("Id", "Rank", "Submission Time", "Total Absolute Score", "Total Relative Score")
	t.Row(
		"Top",
		"-",
		"Top Score Summary",
		FormatTotalAbsoluteScore(topSummary.TotalAbsoluteScore, topSummary.InvalidScoreCount),
		FormatRelativeScore(maxRelative, maxRelative),
	)
	for _, record := range records {
		t.Row(
			strconv.FormatInt(record.ID, 10),
			formatRank(record.RelativeRank),
			record.SubmissionTime.Format(timeFormat),
			FormatTotalAbsoluteScore(record.TotalAbsoluteScore, int64(record.InvalidScoreCount)),
			FormatRelativeScore(record.TotalRelativeScore, maxRelative),
		)
	}

	v.render(fmt.Sprintf("Latest %d Scores (Including Top Score)", len(records)), t)
	return nil
}

// ShowDetail renders one submission's summary and its per-test-case scores.
func (v *Viewer) ShowDetail(ctx context.Context, id int64) error {
	record, err := v.store.ScoreHistories.Fetch(ctx, id)
	if err != nil {
		return err
	}

	topSummary, err := v.store.TopScores.FetchSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch top summary: %w", err)
	}
	maxRelative := topSummary.TestCaseCount * scoring.MaxScore

	summary := newTable("Id", "Rank", "Submission Time", "Total Absolute Score", "Total Relative Score")
	summary.Row(
		strconv.FormatInt(record.ID, 10),
		formatRank(record.RelativeRank),
		record.SubmissionTime.Format(timeFormat),
		FormatTotalAbsoluteScore(record.TotalAbsoluteScore, int64(record.InvalidScoreCount)),
		FormatRelativeScore(record.TotalRelativeScore, maxRelative),
	)
	v.render(fmt.Sprintf("Submission Summary for ID %d", record.ID), summary)

	details, err := v.store.TestCaseResults.FetchDetails(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch details for submission %d: %w", id, err)
	}

	t := newTable("Test Case", "Absolute Score", "Score Diff", "Relative Score")
	for _, detail := range details {
		relative, err := v.calc.RelativeScore(detail.AbsoluteScore, detail.TopAbsoluteScore)
		if err != nil {
			return fmt.Errorf("failed to compute relative score for %q: %w", detail.TestCaseName, err)
		}
		t.Row(
			detail.TestCaseName,
			FormatOptionalScore(detail.AbsoluteScore),
			FormatScoreDiff(detail.AbsoluteScore, detail.TopAbsoluteScore),
			FormatRelativeScore(relative, scoring.MaxScore),
		)
	}
	v.render(fmt.Sprintf("Submission Details for ID %d", record.ID), t)
	return nil
}

// ShowLatestDetail renders the most recent submission's detail view.
func (v *Viewer) ShowLatestDetail(ctx context.Context) error {
	latest, err := v.store.ScoreHistories.FetchLatest(ctx)
	if err != nil {
		return err
	}
	return v.ShowDetail(ctx, latest.ID)
}

// ShowTopDetail renders every test case's best score and the submission
// that set it.
func (v *Viewer) ShowTopDetail(ctx context.Context) error {
	details, err := v.store.TopScores.FetchAllDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch top details: %w", err)
	}

	t := newTable("Test Case", "Absolute Score", "Id")
	for _, detail := range details {
		t.Row(
			detail.TestCaseName,
			FormatOptionalScore(detail.TopAbsoluteScore),
			formatOwner(detail.ScoreHistoryID),
		)
	}
	v.render("Top Scores per Test Case", t)
	return nil
}

func (v *Viewer) render(title string, t *table.Table) {
	fmt.Fprintln(v.out, titleStyle.Render(title))
	fmt.Fprintln(v.out, t)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func formatRank(rank *int) string {
	if rank == nil {
		return errorStyle.Render("None")
	}
	return strconv.Itoa(*rank)
}

func formatOwner(id *int64) string {
	if id == nil {
		return errorStyle.Render("None")
	}
	return strconv.FormatInt(*id, 10)
}
