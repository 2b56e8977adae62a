package prompt

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/readyou/pkg/models"
)

// Assemble composes the final backend request from the pipeline's outputs.
// The rendered text never exceeds maxTotalBytes: when the full set of
// snippets does not fit, whole snippets are dropped from the tail of the
// selection order until it does. Snippets are never cut further than the
// sampler already did. Assembly is a pure function of its inputs, so
// identical inputs render byte-identical payloads.
func Assemble(profile models.LanguageProfile, files []models.FileRecord, snippets []models.ContentSnippet, verbosity models.Verbosity, maxTotalBytes int) models.PromptPayload {
	kept := snippets
	text := render(profile, files, kept, verbosity)

	for maxTotalBytes > 0 && len(text) > maxTotalBytes && len(kept) > 0 {
		dropped := kept[len(kept)-1]
		kept = kept[:len(kept)-1]
		log.Debug().
			Str("file", dropped.File.RelPath).
			Int("over_budget", len(text)-maxTotalBytes).
			Msg("Dropping lowest-priority snippet to fit prompt budget")
		text = render(profile, files, kept, verbosity)
	}

	if maxTotalBytes > 0 && len(text) > maxTotalBytes {
		log.Warn().
			Int("size", len(text)).
			Int("budget", maxTotalBytes).
			Msg("Prompt header alone exceeds budget; sending without snippets")
	}

	return models.PromptPayload{
		Profile:   profile,
		Files:     files,
		Snippets:  kept,
		Verbosity: verbosity,
		Text:      text,
	}
}

// ProjectType names the dominant language, or UnknownProjectType when the
// profile is empty.
func ProjectType(profile models.LanguageProfile) string {
	if profile.Empty() {
		return UnknownProjectType
	}
	return profile.Entries[0].Name
}

func render(profile models.LanguageProfile, files []models.FileRecord, snippets []models.ContentSnippet, verbosity models.Verbosity) string {
	projectType := ProjectType(profile)

	var b strings.Builder
	fmt.Fprintf(&b, DocumentationRole, projectType)
	b.WriteString("\n\n")

	tmpl := ConciseTemplate
	if verbosity == models.VerbosityDetailed {
		tmpl = DetailedTemplate
	}
	fmt.Fprintf(&b, tmpl, projectType, projectType)
	b.WriteString("\n\n")

	if !profile.Empty() {
		b.WriteString(LanguageSectionHeader + "\n")
		for _, e := range profile.Entries {
			fmt.Fprintf(&b, "- %s: %.1f%% (%d files)\n", e.Name, e.Score*100, e.Files)
		}
		b.WriteString("\n")
	}

	b.WriteString(FileSectionHeader + "\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%d bytes)\n", f.RelPath, f.Size)
	}
	b.WriteString("\n")

	b.WriteString(CodeSectionHeader + "\n")
	for _, s := range snippets {
		fmt.Fprintf(&b, "\n%s%s\n", FilePrefix, s.File.RelPath)
		switch {
		case s.Unreadable:
			b.WriteString(UnreadableMarker + "\n")
		case s.Truncated:
			b.WriteString(s.Text)
			b.WriteString("\n" + TruncatedMarker + "\n")
		default:
			b.WriteString(s.Text)
			b.WriteString("\n")
		}
	}

	return b.String()
}
