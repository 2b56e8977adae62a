package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readyou/pkg/models"
)

func fixture() (models.LanguageProfile, []models.FileRecord, []models.ContentSnippet) {
	profile := models.LanguageProfile{Entries: []models.LanguageScore{
		{Name: "Go", Score: 0.7, Files: 3, Bytes: 700},
		{Name: "Python", Score: 0.3, Files: 1, Bytes: 300},
	}}
	files := []models.FileRecord{
		{RelPath: "main.go", Size: 300},
		{RelPath: "go.mod", Size: 40},
		{RelPath: "util.go", Size: 400},
	}
	snippets := []models.ContentSnippet{
		{File: files[0], Text: "package main\n\nfunc main() {}"},
		{File: files[1], Text: "module example"},
		{File: files[2], Text: strings.Repeat("func helper() {}\n", 20)},
	}
	return profile, files, snippets
}

func TestAssembleIdempotent(t *testing.T) {
	profile, files, snippets := fixture()

	first := Assemble(profile, files, snippets, models.VerbosityConcise, 100000)
	second := Assemble(profile, files, snippets, models.VerbosityConcise, 100000)
	require.Equal(t, first, second)
	require.Equal(t, first.Text, second.Text)
}

func TestAssembleEmbedsProfileAndSnippets(t *testing.T) {
	profile, files, snippets := fixture()

	payload := Assemble(profile, files, snippets, models.VerbosityConcise, 100000)
	require.Contains(t, payload.Text, "Go: 70.0% (3 files)")
	require.Contains(t, payload.Text, FilePrefix+"main.go")
	require.Contains(t, payload.Text, "package main")
	require.Contains(t, payload.Text, "specializing in Go")
}

func TestAssembleVerbosityMapping(t *testing.T) {
	profile, files, snippets := fixture()

	concise := Assemble(profile, files, snippets, models.VerbosityConcise, 100000)
	require.Contains(t, concise.Text, "generate a concise README.md")
	require.NotContains(t, concise.Text, "Contributing Guidelines")

	detailed := Assemble(profile, files, snippets, models.VerbosityDetailed, 100000)
	require.Contains(t, detailed.Text, "Contributing Guidelines")
	require.NotContains(t, detailed.Text, "generate a concise README.md")
}

func TestAssembleDropsTailSnippetsToFitBudget(t *testing.T) {
	profile, files, snippets := fixture()

	full := Assemble(profile, files, snippets, models.VerbosityConcise, 100000)
	budget := len(full.Text) - 50

	reduced := Assemble(profile, files, snippets, models.VerbosityConcise, budget)
	require.LessOrEqual(t, len(reduced.Text), budget)
	require.Less(t, len(reduced.Snippets), len(snippets))

	// Highest-priority snippets survive in order; nothing is re-truncated.
	for i, s := range reduced.Snippets {
		require.Equal(t, snippets[i].File.RelPath, s.File.RelPath)
		require.Equal(t, snippets[i].Text, s.Text)
	}
}

func TestAssembleMarksUnreadableAndTruncated(t *testing.T) {
	profile := models.LanguageProfile{Entries: []models.LanguageScore{
		{Name: "Go", Score: 1.0, Files: 1, Bytes: 100},
	}}
	files := []models.FileRecord{{RelPath: "a.go"}, {RelPath: "b.go"}}
	snippets := []models.ContentSnippet{
		{File: files[0], Unreadable: true},
		{File: files[1], Text: "short", Truncated: true},
	}

	payload := Assemble(profile, files, snippets, models.VerbosityConcise, 100000)
	require.Contains(t, payload.Text, UnreadableMarker)
	require.Contains(t, payload.Text, TruncatedMarker)
}

func TestProjectTypeUnknownForEmptyProfile(t *testing.T) {
	require.Equal(t, UnknownProjectType, ProjectType(models.LanguageProfile{}))

	payload := Assemble(models.LanguageProfile{}, nil, nil, models.VerbosityConcise, 100000)
	require.Contains(t, payload.Text, "specializing in Unknown")
	require.NotContains(t, payload.Text, LanguageSectionHeader)
}
