package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/readyou/pkg/models"
)

// DefaultExcludeDirs are directory names never descended into: version
// control metadata, dependency caches, and build output.
var DefaultExcludeDirs = []string{
	".git", ".hg", ".svn",
	"node_modules", "vendor", "bower_components",
	"venv", ".venv", "__pycache__", ".tox", ".mypy_cache",
	"build", "dist", "target", "out", "bin", "obj",
	".idea", ".vscode", ".next", ".cache",
}

// DefaultExcludePatterns are glob patterns matched against directory names.
var DefaultExcludePatterns = []string{
	"*.egg-info",
}

// Options configures a walk.
type Options struct {
	ExcludeDirs     []string
	ExcludePatterns []string
}

// DefaultOptions returns the standard exclusion rules.
func DefaultOptions() Options {
	return Options{
		ExcludeDirs:     DefaultExcludeDirs,
		ExcludePatterns: DefaultExcludePatterns,
	}
}

// Walk traverses the repository tree rooted at root and returns one
// FileRecord per regular file, in deterministic lexicographic-per-directory
// order. Excluded directories are skipped before being descended into.
// Symbolic links are never followed, so a link cycle cannot recurse and no
// record can resolve outside the root. A root that does not exist or is not
// a readable directory produces an AccessError; individual unreadable files
// produce warnings and the walk continues.
func Walk(root string, opts Options) ([]models.FileRecord, []models.Warning, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, &models.AccessError{Path: root, Err: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, nil, &models.AccessError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, &models.AccessError{Path: root, Err: fs.ErrInvalid}
	}

	// Resolve the root once so visited-directory identities are canonical
	// even when the root itself is given through a symlink.
	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, nil, &models.AccessError{Path: root, Err: err}
	}

	var (
		records  []models.FileRecord
		warnings []models.Warning
	)
	visited := map[string]bool{resolvedRoot: true}

	walkErr := filepath.WalkDir(resolvedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == resolvedRoot {
				return &models.AccessError{Path: root, Err: err}
			}
			warnings = append(warnings, models.Warning{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == resolvedRoot {
				return nil
			}
			if excluded(d.Name(), opts) {
				log.Debug().Str("dir", d.Name()).Msg("Skipping excluded directory")
				return fs.SkipDir
			}
			resolved, rerr := filepath.EvalSymlinks(path)
			if rerr != nil {
				warnings = append(warnings, models.Warning{Path: path, Err: rerr})
				return fs.SkipDir
			}
			if visited[resolved] {
				return fs.SkipDir
			}
			visited[resolved] = true
			return nil
		}

		// Symlinks and other non-regular entries are skipped outright;
		// following them could escape the root.
		if !d.Type().IsRegular() {
			return nil
		}

		fi, ierr := d.Info()
		if ierr != nil {
			warnings = append(warnings, models.Warning{Path: path, Err: ierr})
			return nil
		}

		rel, rerr := filepath.Rel(resolvedRoot, path)
		if rerr != nil {
			warnings = append(warnings, models.Warning{Path: path, Err: rerr})
			return nil
		}

		records = append(records, models.FileRecord{
			RelPath: filepath.ToSlash(rel),
			AbsPath: path,
			Size:    fi.Size(),
			Ext:     strings.ToLower(filepath.Ext(path)),
		})
		return nil
	})

	if walkErr != nil {
		return nil, warnings, walkErr
	}

	log.Debug().
		Int("files", len(records)).
		Int("warnings", len(warnings)).
		Str("root", resolvedRoot).
		Msg("Repository walk complete")

	return records, warnings, nil
}

func excluded(name string, opts Options) bool {
	for _, d := range opts.ExcludeDirs {
		if name == d {
			return true
		}
	}
	for _, p := range opts.ExcludePatterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
