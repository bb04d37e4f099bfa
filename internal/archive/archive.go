// Package archive keeps a copy of the best-scoring output file for every
// test case under the leaderboard's top directory.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"leaderboard/internal/models"

	"github.com/google/uuid"
)

type Archiver struct {
	topDir string
}

func NewArchiver(topDir string) *Archiver {
	return &Archiver{topDir: topDir}
}

// ArchiveBest copies the test case's output file over the archived copy for
// that case. The copy goes through a uniquely named temp file and a rename,
// so a crash mid-copy never leaves a truncated archive entry.
func (a *Archiver) ArchiveBest(testCase models.TestCase) error {
	if _, err := os.Stat(a.topDir); err != nil {
		return fmt.Errorf("top directory %q is not usable: %w", a.topDir, err)
	}

	dest := filepath.Join(a.topDir, testCase.Name)
	tmp := fmt.Sprintf("%s.%s.tmp", dest, uuid.New().String()[:8])

	if err := copyFile(testCase.OutputPath, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move archived output into place: %w", err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to copy %q to %q: %w", src, dest, err)
	}
	return out.Close()
}
