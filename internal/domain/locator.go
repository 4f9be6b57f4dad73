package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

// Locator finds the counterpart described by a spec, or proposes where to
// create it.
type Locator interface {
	LocateOrPropose(ctx context.Context, spec m.CounterpartSpec, opts LocateOptions) (m.LocateResult, error)
}

// LocateOptions tunes a single search.
type LocateOptions struct {
	// Exclude lists globs, relative to the project root, that are never searched.
	Exclude []string
	// Anywhere matches the counterpart file name at any depth of its area
	// instead of only at the mirrored path.
	Anywhere bool
}

type locator struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewLocator constructs a Locator backed by the filesystem adapter.
func NewLocator(fsAdapter adapter.SourceFSAdapter) Locator {
	return &locator{fsAdapter: fsAdapter}
}

// LocateOrPropose searches the project root. The first match in lexicographic
// order wins.
func (l *locator) LocateOrPropose(ctx context.Context, spec m.CounterpartSpec, opts LocateOptions) (m.LocateResult, error) {
	if err := ctx.Err(); err != nil {
		return m.LocateResult{}, err
	}

	pattern := searchPattern(spec, opts.Anywhere)

	matches, err := l.fsAdapter.Search(spec.Source.Root, pattern, opts.Exclude)
	if err != nil {
		return m.LocateResult{}, fmt.Errorf("search for %s: %w", spec.TargetFileName, err)
	}

	if len(matches) == 0 {
		slog.Debug("Counterpart not found", "pattern", pattern, "root", spec.Source.Root)

		return m.LocateResult{
			SuggestedDirectory: spec.TargetDirectory,
			SuggestedFileName:  spec.TargetFileName,
		}, nil
	}

	if len(matches) > 1 {
		slog.Debug("Several counterparts matched, using the first", "pattern", pattern, "matches", matches)
	}

	return m.LocateResult{
		Found:   true,
		Path:    matches[0],
		Matches: matches,
	}, nil
}

func searchPattern(spec m.CounterpartSpec, anywhere bool) string {
	if anywhere {
		return path.Join(string(spec.TargetArea), "**", adapter.EscapeGlob(spec.TargetFileName))
	}

	rel := filepath.ToSlash(string(spec.RelativeTarget()))

	return adapter.EscapeGlob(rel)
}
