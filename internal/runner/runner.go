// Package runner drives the external scoring tool over a directory of test
// inputs and collects one evaluated test case per input file.
package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"leaderboard/internal/models"
)

// Scorer computes the absolute score for one (input, output) file pair. A
// nil score with a nil error means the run produced no valid score; only
// infrastructure problems surface as errors.
type Scorer interface {
	Score(ctx context.Context, inputPath, outputPath string) (*int64, error)
}

var scorePattern = regexp.MustCompile(`Score = (\d+)`)

// CommandScorer scores a test case by running an external command with the
// input and output paths appended, and parsing "Score = N" from its combined
// output. The default command is the AtCoder-distributed visualizer.
type CommandScorer struct {
	command []string
}

func NewCommandScorer(command []string) *CommandScorer {
	return &CommandScorer{command: command}
}

func (s *CommandScorer) Score(ctx context.Context, inputPath, outputPath string) (*int64, error) {
	if len(s.command) == 0 {
		return nil, fmt.Errorf("no scorer command configured")
	}

	args := append(append([]string{}, s.command[1:]...), inputPath, outputPath)
	cmd := exec.CommandContext(ctx, s.command[0], args...)

	// A failing or crashing scorer means no valid score for this one case,
	// not a failed submission.
	output, _ := cmd.CombinedOutput()
	return parseScore(string(output)), nil
}

func parseScore(output string) *int64 {
	match := scorePattern.FindStringSubmatch(output)
	if match == nil {
		return nil
	}
	score, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || score <= 0 {
		return nil
	}
	return &score
}

// Runner evaluates every file of the input directory, in sorted name order,
// against the submission's output directory.
type Runner struct {
	scorer    Scorer
	inputDir  string
	outputDir string
}

func NewRunner(scorer Scorer, inputDir, outputDir string) *Runner {
	return &Runner{
		scorer:    scorer,
		inputDir:  inputDir,
		outputDir: outputDir,
	}
}

// Run scores all test cases sequentially and returns them in input-name
// order. Scoring failures for individual cases yield nil scores and do not
// abort the run.
func (r *Runner) Run(ctx context.Context) ([]models.TestCase, error) {
	names, err := r.listInputNames()
	if err != nil {
		return nil, err
	}

	cases := make([]models.TestCase, 0, len(names))
	for i, name := range names {
		outputPath := filepath.Join(r.outputDir, name)

		score, err := r.scorer.Score(ctx, filepath.Join(r.inputDir, name), outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to score test case %q: %w", name, err)
		}

		log.Printf("Scored test case %s (%d/%d)", name, i+1, len(names))
		cases = append(cases, models.TestCase{
			Name:       name,
			Score:      score,
			OutputPath: outputPath,
		})
	}

	return cases, nil
}

func (r *Runner) listInputNames() ([]string, error) {
	entries, err := os.ReadDir(r.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %q: %w", r.inputDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
