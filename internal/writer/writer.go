package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/readyou/pkg/models"
)

// Footer is appended to every generated document.
const Footer = "\n\n---\n*This README was automatically generated using [readyou](https://github.com/readyou/readyou)*"

const (
	dryRunHeader = "\n=== Generated README Content ===\n"
	dryRunFooter = "\n============================\n"
)

// Write finalizes the generated document and either persists it or, in dry
// run, renders it to out without touching the filesystem. outputPath
// overrides the default README.md inside the repository. Returns the path
// written, or "" for a dry run.
func Write(result *models.GenerationResult, repoPath, outputPath string, dryRun bool, out io.Writer) (string, error) {
	content := result.Text + Footer

	if dryRun {
		fmt.Fprint(out, dryRunHeader)
		fmt.Fprintln(out, content)
		fmt.Fprint(out, dryRunFooter)
		return "", nil
	}

	path := outputPath
	if path == "" {
		path = filepath.Join(repoPath, "README.md")
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	log.Debug().Str("path", path).Int("bytes", len(content)).Msg("Document written")
	return path, nil
}
