package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	t.Run("extracts the score line", func(t *testing.T) {
		got := parseScore("warming up\nScore = 12345\n")
		require.NotNil(t, got)
		assert.Equal(t, int64(12345), *got)
	})

	t.Run("missing score line yields nil", func(t *testing.T) {
		assert.Nil(t, parseScore("error: output file malformed"))
	})

	t.Run("zero score yields nil", func(t *testing.T) {
		assert.Nil(t, parseScore("Score = 0"))
	})
}

type stubScorer struct {
	scores map[string]int64
}

func (s *stubScorer) Score(ctx context.Context, inputPath, outputPath string) (*int64, error) {
	score, ok := s.scores[filepath.Base(inputPath)]
	if !ok {
		return nil, nil
	}
	return &score, nil
}

func TestRunnerVisitsInputsInSortedOrder(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	for _, name := range []string{"0002.txt", "0000.txt", "0001.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(inputDir, name), []byte("in"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(inputDir, "nested"), 0o755), "directories must be skipped")

	scorer := &stubScorer{scores: map[string]int64{
		"0000.txt": 100,
		"0002.txt": 300,
	}}

	cases, err := NewRunner(scorer, inputDir, outputDir).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "0000.txt", cases[0].Name)
	assert.Equal(t, "0001.txt", cases[1].Name)
	assert.Equal(t, "0002.txt", cases[2].Name)

	require.NotNil(t, cases[0].Score)
	assert.Equal(t, int64(100), *cases[0].Score)
	assert.Nil(t, cases[1].Score, "unscored case is recorded as failed, not dropped")
	require.NotNil(t, cases[2].Score)
	assert.Equal(t, int64(300), *cases[2].Score)

	assert.Equal(t, filepath.Join(outputDir, "0000.txt"), cases[0].OutputPath)
}

func TestRunnerFailsOnMissingInputDir(t *testing.T) {
	scorer := &stubScorer{}
	_, err := NewRunner(scorer, filepath.Join(t.TempDir(), "missing"), t.TempDir()).Run(context.Background())
	assert.Error(t, err)
}
