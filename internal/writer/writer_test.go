package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readyou/pkg/models"
)

func TestWritePersistsDocumentWithFooter(t *testing.T) {
	repo := t.TempDir()
	result := &models.GenerationResult{Text: "# Test README\nThis is a test."}

	path, err := Write(result, repo, "", false, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(repo, "README.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "# Test README")
	require.Contains(t, string(content), "automatically generated")
}

func TestWriteHonorsOutputPath(t *testing.T) {
	repo := t.TempDir()
	custom := filepath.Join(t.TempDir(), "DOCS.md")
	result := &models.GenerationResult{Text: "# Docs"}

	path, err := Write(result, repo, custom, false, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, custom, path)

	_, err = os.Stat(custom)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(repo, "README.md"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteDryRunDoesNotPersist(t *testing.T) {
	repo := t.TempDir()
	result := &models.GenerationResult{Text: "# Test README\nPreview only."}

	var out bytes.Buffer
	path, err := Write(result, repo, "", true, &out)
	require.NoError(t, err)
	require.Empty(t, path)

	_, err = os.Stat(filepath.Join(repo, "README.md"))
	require.True(t, os.IsNotExist(err))

	require.Contains(t, out.String(), "# Test README")
	require.Contains(t, out.String(), "Preview only.")
	require.Contains(t, out.String(), "Generated README Content")
}
