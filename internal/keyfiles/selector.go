package keyfiles

import (
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/readyou/internal/language"
	"github.com/readyou/pkg/models"
)

// entryPoints lists conventional entry-point filenames per language, in
// priority order.
var entryPoints = map[string][]string{
	"Python":     {"main.py", "app.py", "__main__.py", "index.py", "cli.py"},
	"JavaScript": {"index.js", "main.js", "app.js", "server.js"},
	"TypeScript": {"index.ts", "main.ts", "app.ts", "server.ts"},
	"Go":         {"main.go"},
	"Rust":       {"main.rs", "lib.rs"},
	"Java":       {"Main.java", "App.java", "Application.java"},
	"Kotlin":     {"Main.kt", "App.kt"},
	"Ruby":       {"main.rb", "app.rb", "application.rb"},
	"PHP":        {"index.php", "app.php"},
	"C#":         {"Program.cs", "Startup.cs"},
	"C":          {"main.c"},
	"C++":        {"main.cpp", "main.cc"},
	"Swift":      {"main.swift"},
	"Elixir":     {"application.ex"},
	"Shell":      {"main.sh", "run.sh"},
}

// manifestFiles are package/project descriptors selected regardless of
// language.
var manifestFiles = map[string]bool{
	"go.mod":           true,
	"package.json":     true,
	"cargo.toml":       true,
	"pyproject.toml":   true,
	"setup.py":         true,
	"requirements.txt": true,
	"pom.xml":          true,
	"build.gradle":     true,
	"build.gradle.kts": true,
	"gemfile":          true,
	"composer.json":    true,
	"makefile":         true,
	"cmakelists.txt":   true,
	"dockerfile":       true,
	"mix.exs":          true,
	"deno.json":        true,
}

// Budget bounds a selection.
type Budget struct {
	MaxFiles      int
	MaxTotalBytes int64
}

// Select picks the bounded subset of candidate files judged most useful for
// describing the repository. Three tiers, in priority order: entry points of
// the dominant languages, package manifests, then remaining source files of
// the dominant languages nearest the root. Within a tier candidates order by
// path depth then lexicographic path, so the result is deterministic. A
// candidate that would blow the byte budget is skipped, not truncated, and
// the next one is tried. When the profile is empty the selection degrades:
// tier three considers every candidate instead of dominant-language files.
// Returns ErrSelectionEmpty when nothing at all could be selected.
func Select(records []models.FileRecord, profile models.LanguageProfile, b Budget) ([]models.FileRecord, error) {
	if b.MaxFiles <= 0 || len(records) == 0 {
		return nil, models.ErrSelectionEmpty
	}

	dominant := profile.Dominant(2)

	entryNames := map[string]bool{}
	for _, lang := range dominant {
		for _, name := range entryPoints[lang] {
			entryNames[strings.ToLower(name)] = true
		}
	}

	dominantExts := language.ExtensionsFor(dominant)

	var tier1, tier2, tier3 []models.FileRecord
	for _, rec := range records {
		base := strings.ToLower(path.Base(rec.RelPath))
		switch {
		case entryNames[base]:
			tier1 = append(tier1, rec)
		case manifestFiles[base]:
			tier2 = append(tier2, rec)
		case profile.Empty() || dominantExts[rec.Ext]:
			tier3 = append(tier3, rec)
		}
	}

	sortTier(tier1)
	sortTier(tier2)
	sortTier(tier3)

	var (
		selected []models.FileRecord
		total    int64
	)
	seen := map[string]bool{}
	for _, tier := range [][]models.FileRecord{tier1, tier2, tier3} {
		for _, rec := range tier {
			if len(selected) >= b.MaxFiles {
				break
			}
			if seen[rec.RelPath] {
				continue
			}
			if b.MaxTotalBytes > 0 && total+rec.Size > b.MaxTotalBytes {
				log.Debug().
					Str("file", rec.RelPath).
					Int64("size", rec.Size).
					Msg("Skipping key-file candidate over byte budget")
				continue
			}
			seen[rec.RelPath] = true
			selected = append(selected, rec)
			total += rec.Size
		}
	}

	if len(selected) == 0 {
		return nil, models.ErrSelectionEmpty
	}

	log.Debug().
		Int("selected", len(selected)).
		Int64("bytes", total).
		Strs("dominant", dominant).
		Msg("Key-file selection complete")

	return selected, nil
}

// sortTier orders candidates by path depth ascending, then lexicographic.
func sortTier(tier []models.FileRecord) {
	sort.Slice(tier, func(i, j int) bool {
		di, dj := depth(tier[i].RelPath), depth(tier[j].RelPath)
		if di != dj {
			return di < dj
		}
		return tier[i].RelPath < tier[j].RelPath
	})
}

func depth(rel string) int {
	return strings.Count(rel, "/")
}
