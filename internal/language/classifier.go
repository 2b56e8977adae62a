package language

import (
	"bufio"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/readyou/pkg/models"
)

// extLanguages maps file extensions to language labels.
var extLanguages = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".go":    "Go",
	".rs":    "Rust",
	".java":  "Java",
	".kt":    "Kotlin",
	".rb":    "Ruby",
	".php":   "PHP",
	".cs":    "C#",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".swift": "Swift",
	".scala": "Scala",
	".sh":    "Shell",
	".bash":  "Shell",
	".pl":    "Perl",
	".lua":   "Lua",
	".r":     "R",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".erl":   "Erlang",
	".hs":    "Haskell",
	".zig":   "Zig",
	".dart":  "Dart",
	".vue":   "Vue",
}

// markerFiles maps well-known extensionless filenames to a language label.
var markerFiles = map[string]string{
	"makefile":    "Make",
	"gnumakefile": "Make",
	"dockerfile":  "Dockerfile",
	"rakefile":    "Ruby",
	"gemfile":     "Ruby",
	"justfile":    "Just",
}

// shebangLanguages maps interpreter names found on a #! line to a label.
var shebangLanguages = map[string]string{
	"python":  "Python",
	"python3": "Python",
	"node":    "JavaScript",
	"ruby":    "Ruby",
	"perl":    "Perl",
	"sh":      "Shell",
	"bash":    "Shell",
	"zsh":     "Shell",
}

// ExtensionsFor returns the set of file extensions that classify as any of
// the given languages.
func ExtensionsFor(langs []string) map[string]bool {
	want := map[string]bool{}
	for _, l := range langs {
		want[l] = true
	}
	exts := map[string]bool{}
	for ext, lang := range extLanguages {
		if want[lang] {
			exts[ext] = true
		}
	}
	return exts
}

// Classify computes the ranked language distribution of the candidate files.
// Bytes are accumulated per label and normalized over the total size of all
// scanned files, recognized or not, so scores sum to at most 1.0. Ties rank
// by file count and then by label name, which makes the ordering stable for
// an unchanged tree. Files that match nothing contribute only to the
// normalization total. An empty result means nothing was classifiable and
// downstream stages degrade rather than fail.
func Classify(records []models.FileRecord) models.LanguageProfile {
	type agg struct {
		bytes int64
		files int
	}
	byLang := map[string]*agg{}
	var totalBytes int64

	for _, rec := range records {
		totalBytes += rec.Size
		lang := detect(rec)
		if lang == "" {
			continue
		}
		a := byLang[lang]
		if a == nil {
			a = &agg{}
			byLang[lang] = a
		}
		a.bytes += rec.Size
		a.files++
	}

	if len(byLang) == 0 || totalBytes == 0 {
		return models.LanguageProfile{}
	}

	entries := make([]models.LanguageScore, 0, len(byLang))
	for name, a := range byLang {
		entries = append(entries, models.LanguageScore{
			Name:  name,
			Score: float64(a.bytes) / float64(totalBytes),
			Files: a.files,
			Bytes: a.bytes,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Bytes != entries[j].Bytes {
			return entries[i].Bytes > entries[j].Bytes
		}
		if entries[i].Files != entries[j].Files {
			return entries[i].Files > entries[j].Files
		}
		return entries[i].Name < entries[j].Name
	})

	return models.LanguageProfile{Entries: entries}
}

// detect maps one record to a language label, or "" when unrecognized.
// Extension lookup comes first; extensionless files fall back to marker
// filenames and then to a shebang sniff of the file head.
func detect(rec models.FileRecord) string {
	if rec.Ext != "" {
		return extLanguages[rec.Ext]
	}
	base := strings.ToLower(path.Base(rec.RelPath))
	if lang, ok := markerFiles[base]; ok {
		return lang
	}
	return sniffShebang(rec.AbsPath)
}

// sniffShebang reads the first line of a file and maps its interpreter to a
// language label. Any read failure just means "unrecognized".
func sniffShebang(abs string) string {
	f, err := os.Open(abs)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 256), 256)
	if !scanner.Scan() {
		return ""
	}
	line := scanner.Text()
	if !strings.HasPrefix(line, "#!") {
		return ""
	}

	// Interpreter is the last path element; "env" defers to its argument.
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return ""
	}
	interp := fields[0]
	if i := strings.LastIndexByte(interp, '/'); i >= 0 {
		interp = interp[i+1:]
	}
	if interp == "env" && len(fields) > 1 {
		interp = fields[1]
	}
	return shebangLanguages[interp]
}
