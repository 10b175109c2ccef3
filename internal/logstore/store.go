// Package logstore reads append-only JSONL result logs from a directory
// tree. The first path segment under the root names the run a file belongs
// to. Traversal is lexicographic per directory, which makes record order
// deterministic for a given tree; cross-file order is still not guaranteed
// to match wall-clock append order, so "most recent" downstream means last
// in traversal order, not newest by timestamp.
package logstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"riddlebench/internal/record"
)

// Extension is the recognized result-log file suffix.
const Extension = ".jsonl"

// ErrPathEscapesRoot is returned for caller-supplied paths that resolve
// outside the store root. Such paths are rejected before being opened.
var ErrPathEscapesRoot = errors.New("logstore: path escapes store root")

// Store provides read access to a log store root.
type Store struct {
	root string
}

// New builds a store rooted at the given directory. The root does not have
// to exist yet; a missing root simply yields empty listings.
func New(root string) (Store, error) {
	if strings.TrimSpace(root) == "" {
		return Store{}, fmt.Errorf("logstore: root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Store{}, fmt.Errorf("logstore: resolve root: %w", err)
	}
	return Store{root: abs}, nil
}

// Root returns the absolute store root.
func (s Store) Root() string {
	return s.root
}

// Runs lists the distinct top-level directory names under the root, sorted.
// An unreadable root contributes no runs rather than failing the request.
func (s Store) Runs() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	runs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs
}

// Files lists root-relative paths of all result-log files, optionally
// restricted to one run. Directories that cannot be read are skipped
// silently; the walk never follows directory symlinks, so link loops cannot
// hang a scan.
func (s Store) Files(run string) []string {
	start := s.root
	prefix := ""
	if run != "" {
		rel, err := s.resolveRel(run)
		if err != nil {
			return nil
		}
		start = filepath.Join(s.root, rel)
		prefix = rel
	}
	var files []string
	_ = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}
		rel, err := filepath.Rel(start, path)
		if err != nil {
			return nil
		}
		if prefix != "" {
			rel = filepath.Join(prefix, rel)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)
	return files
}

// Scan parses every log file (optionally one run's worth) into a single
// record stream in traversal order. A file that cannot be read contributes
// zero records.
func (s Store) Scan(run string) []record.Result {
	var records []record.Result
	for _, rel := range s.Files(run) {
		parsed, err := record.ParseFile(filepath.Join(s.root, filepath.FromSlash(rel)), rel)
		if err != nil {
			continue
		}
		records = append(records, parsed...)
	}
	return records
}

// ReadFile parses one log file addressed by a store-relative path, after
// confirming the path stays inside the root.
func (s Store) ReadFile(relPath string) ([]record.Result, error) {
	rel, err := s.resolveRel(relPath)
	if err != nil {
		return nil, err
	}
	return record.ParseFile(filepath.Join(s.root, rel), filepath.ToSlash(rel))
}

// resolveRel cleans a caller-supplied path and rejects anything that
// resolves outside the store root, before touching the filesystem.
func (s Store) resolveRel(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("logstore: path is empty")
	}
	cleaned := filepath.Clean(filepath.FromSlash(trimmed))
	var rel string
	if filepath.IsAbs(cleaned) {
		relative, err := filepath.Rel(s.root, cleaned)
		if err != nil {
			return "", fmt.Errorf("logstore: resolve path %q: %w", path, err)
		}
		rel = relative
	} else {
		rel = cleaned
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapesRoot, path)
	}
	return rel, nil
}
