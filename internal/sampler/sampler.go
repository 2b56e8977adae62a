package sampler

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/readyou/pkg/models"
)

// Sample reads each selected file and produces one snippet per file, in the
// same order. Content is normalized to valid UTF-8 with undecodable bytes
// replaced, then cut to maxChars characters with Truncated set when content
// was lost. A file that cannot be read yields an empty snippet with the
// Unreadable marker plus a warning; sampling never aborts the run.
func Sample(files []models.FileRecord, maxChars int) ([]models.ContentSnippet, []models.Warning) {
	snippets := make([]models.ContentSnippet, 0, len(files))
	var warnings []models.Warning

	for _, rec := range files {
		raw, err := os.ReadFile(rec.AbsPath)
		if err != nil {
			log.Warn().Err(err).Str("file", rec.RelPath).Msg("Selected file became unreadable")
			warnings = append(warnings, models.Warning{Path: rec.RelPath, Err: err})
			snippets = append(snippets, models.ContentSnippet{File: rec, Unreadable: true})
			continue
		}

		text := strings.ToValidUTF8(string(raw), "�")
		truncated := false
		if maxChars > 0 {
			runes := []rune(text)
			if len(runes) > maxChars {
				text = string(runes[:maxChars])
				truncated = true
			}
		}

		snippets = append(snippets, models.ContentSnippet{
			File:      rec,
			Text:      text,
			Truncated: truncated,
		})
	}

	return snippets, warnings
}
