package models

import (
	"time"
)

// FileRecord identifies a single candidate file produced by the tree walker.
// Records are immutable once produced; every downstream stage works on them.
type FileRecord struct {
	RelPath string `json:"rel_path"` // slash-separated path relative to the repository root
	AbsPath string `json:"abs_path"`
	Size    int64  `json:"size"`
	Ext     string `json:"ext"` // lowercase extension including the dot, "" if none
}

// LanguageScore is one entry of a LanguageProfile.
type LanguageScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"` // share of total scanned bytes, 0..1
	Files int     `json:"files"`
	Bytes int64   `json:"bytes"`
}

// LanguageProfile is the ranked language distribution of a repository.
// Entries are ordered by byte share descending, then file count descending,
// then name ascending. Scores sum to at most 1.0 because unrecognized files
// count toward the normalization total but get no entry.
type LanguageProfile struct {
	Entries []LanguageScore `json:"entries"`
}

// Empty reports whether no files could be classified.
func (p LanguageProfile) Empty() bool {
	return len(p.Entries) == 0
}

// Dominant returns the names of the top n ranked languages.
func (p LanguageProfile) Dominant(n int) []string {
	if n > len(p.Entries) {
		n = len(p.Entries)
	}
	names := make([]string, 0, n)
	for _, e := range p.Entries[:n] {
		names = append(names, e.Name)
	}
	return names
}

// ContentSnippet is the sampled text of one selected key file.
type ContentSnippet struct {
	File       FileRecord `json:"file"`
	Text       string     `json:"text"`
	Truncated  bool       `json:"truncated"`
	Unreadable bool       `json:"unreadable"`
}

// Verbosity selects the instructional template embedded in a prompt payload.
type Verbosity int

const (
	VerbosityConcise Verbosity = iota
	VerbosityDetailed
)

func (v Verbosity) String() string {
	if v == VerbosityDetailed {
		return "detailed"
	}
	return "concise"
}

// PromptPayload is the exact request handed to the generation backend.
// Text is the fully rendered prompt; the structured fields are retained so
// callers and tests can inspect what went into it. Immutable once assembled.
type PromptPayload struct {
	Profile   LanguageProfile  `json:"profile"`
	Files     []FileRecord     `json:"files"`
	Snippets  []ContentSnippet `json:"snippets"`
	Verbosity Verbosity        `json:"verbosity"`
	Text      string           `json:"text"`
}

// GenerationResult is the outcome of a successful backend call.
type GenerationResult struct {
	Text     string        `json:"text"`
	Model    string        `json:"model"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration"`
}

// Options configures a single pipeline run. Zero-valued limits fall back to
// the documented defaults via Normalize.
type Options struct {
	Model               string        `json:"model"`
	AIProvider          string        `json:"ai_provider"`
	Verbose             bool          `json:"verbose"`
	DryRun              bool          `json:"dry_run"`
	MaxKeyFiles         int           `json:"max_key_files"`
	MaxBytesPerFile     int           `json:"max_bytes_per_file"`
	MaxTotalPromptBytes int           `json:"max_total_prompt_bytes"`
	Timeout             time.Duration `json:"timeout"`
}

// Default limits. The exact budgets were never fixed upstream, so they are
// configurable with these documented defaults.
const (
	DefaultMaxKeyFiles         = 8
	DefaultMaxBytesPerFile     = 16384
	DefaultMaxTotalPromptBytes = 65536
	DefaultTimeout             = 2 * time.Minute
)

// Normalize returns a copy of o with zero-valued limits replaced by defaults.
func (o Options) Normalize() Options {
	if o.MaxKeyFiles <= 0 {
		o.MaxKeyFiles = DefaultMaxKeyFiles
	}
	if o.MaxBytesPerFile <= 0 {
		o.MaxBytesPerFile = DefaultMaxBytesPerFile
	}
	if o.MaxTotalPromptBytes <= 0 {
		o.MaxTotalPromptBytes = DefaultMaxTotalPromptBytes
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}
