// Package adapter contains filesystem and editor adapters for the counterpart CLI.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when looking at user projects. It intentionally hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindProjectRoot walks up from startPath until a directory holding marker
	// is found.
	FindProjectRoot(startPath m.Path, marker string) (m.Path, error)

	// Search returns every file under root whose slash-separated relative path
	// matches pattern and no exclude glob, sorted lexicographically.
	Search(root m.Path, pattern string, exclude []string) ([]m.Path, error)

	// CreateFile creates dir if needed and writes a new file named name into
	// it. It fails if the file exists and leaves nothing behind on failure.
	CreateFile(dir m.Path, name string, content []byte) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// DefaultExcludes are the tool-generated directories never searched.
var DefaultExcludes = []string{
	"**/.elixir_ls/**",
	"**/_build/**",
	"**/deps/**",
	"**/node_modules/**",
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindProjectRoot searches for marker walking up the directory tree.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path, marker string) (m.Path, error) {
	start, err := filepath.Abs(string(startPath))
	if err != nil {
		return "", err
	}

	dir := start
	if info, statErr := os.Stat(start); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(start)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", marker, startPath)
		}

		dir = parent
	}
}

// Search walks root and collects the files matching pattern. The walk starts
// at the longest literal directory prefix of pattern.
func (a *LocalSourceFSAdapter) Search(root m.Path, pattern string, exclude []string) ([]m.Path, error) {
	rootStr := filepath.Clean(string(root))
	start := filepath.Join(rootStr, filepath.FromSlash(literalPrefix(pattern)))

	if _, err := os.Stat(start); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var matches []m.Path

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(rootStr, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && excludesDir(exclude, rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if matchesAny(exclude, rel) {
			return nil
		}

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return fmt.Errorf("search pattern %q: %w", pattern, err)
		}

		if ok {
			matches = append(matches, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })

	return matches, nil
}

// CreateFile writes a new file and removes any directory it had to create
// when the write does not complete.
func (a *LocalSourceFSAdapter) CreateFile(dir m.Path, name string, content []byte) (m.Path, error) {
	dirStr := string(dir)
	created := firstMissingAncestor(dirStr)

	if err := os.MkdirAll(dirStr, 0o750); err != nil {
		rollback(created, "")
		return "", err
	}

	target := filepath.Join(dirStr, name)

	// #nosec G304 - target is derived from the project layout
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		rollback(created, "")
		return "", err
	}

	_, writeErr := f.Write(content)
	closeErr := f.Close()

	if err := errors.Join(writeErr, closeErr); err != nil {
		rollback(created, target)
		return "", err
	}

	return m.Path(target), nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// EscapeGlob quotes the glob metacharacters of a literal path.
func EscapeGlob(path string) string {
	var b strings.Builder

	for _, r := range path {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// literalPrefix returns the leading directories of pattern that hold no
// metacharacters, unescaped.
func literalPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")

	var literal []string

	for _, segment := range segments[:len(segments)-1] {
		if hasMeta(segment) {
			break
		}

		literal = append(literal, unescape(segment))
	}

	return strings.Join(literal, "/")
}

func hasMeta(segment string) bool {
	escaped := false

	for _, r := range segment {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case strings.ContainsRune("*?[{", r):
			return true
		}
	}

	return false
}

func unescape(segment string) string {
	var b strings.Builder

	escaped := false

	for _, r := range segment {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}

		escaped = false

		b.WriteRune(r)
	}

	return b.String()
}

func matchesAny(globs []string, rel string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
	}

	return false
}

// excludesDir reports whether a directory is excluded, i.e. anything inside it
// would be.
func excludesDir(globs []string, rel string) bool {
	return matchesAny(globs, rel) || matchesAny(globs, rel+"/_")
}

func firstMissingAncestor(dir string) string {
	missing := ""

	for {
		if _, err := os.Stat(dir); err == nil {
			return missing
		}

		missing = dir

		parent := filepath.Dir(dir)
		if parent == dir {
			return missing
		}

		dir = parent
	}
}

func rollback(createdDir, createdFile string) {
	if createdFile != "" {
		_ = os.Remove(createdFile)
	}

	if createdDir != "" {
		_ = os.RemoveAll(createdDir)
	}
}
