package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

// List resolves every project file under args.Paths (default: the lib and
// test trees) and displays each file with its counterpart. Test-area files
// without a test marker, like support modules, are skipped.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	root := args.Root
	if args.RootMarker != "" {
		if found, err := w.FindProjectRoot(root, args.RootMarker); err == nil {
			root = found
		}
	}

	files, err := w.discover(root, args.Paths, args.Exclude)
	if err != nil {
		return err
	}

	slog.Debug("Discovered project files", "root", root, "count", len(files))

	results := make([]*m.Pair, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(args.Parallel, 1))

	for i, file := range files {
		group.Go(func() error {
			pair, err := w.pairFor(groupCtx, root, file, args.ProjectArgs)
			if err != nil {
				return err
			}

			results[i] = pair

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Failed to list counterparts", "root", root, "error", err)
		return fmt.Errorf("list counterparts: %w", err)
	}

	pairs := make([]m.Pair, 0, len(results))

	for _, pair := range results {
		if pair == nil || (args.MissingOnly && pair.Exists) {
			continue
		}

		pairs = append(pairs, *pair)
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Source < pairs[j].Source })

	return w.DisplayPairs(ctx, pairs)
}

// discover searches each requested path, relative to root, for files.
func (w *workflow) discover(root m.Path, paths []m.Path, exclude []string) ([]m.Path, error) {
	patterns := []string{"{" + string(m.AreaLib) + "," + string(m.AreaTest) + "}/**"}

	if len(paths) > 0 {
		patterns = patterns[:0]

		for _, p := range paths {
			pattern, err := w.pathPattern(root, p)
			if err != nil {
				return nil, err
			}

			patterns = append(patterns, pattern)
		}
	}

	seen := make(map[m.Path]struct{})

	var files []m.Path

	for _, pattern := range patterns {
		matches, err := w.Search(root, pattern, exclude)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", pattern, err)
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}

			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	return files, nil
}

func (w *workflow) pathPattern(root, p m.Path) (string, error) {
	target := p
	if !filepath.IsAbs(string(p)) {
		target = m.Path(filepath.Join(string(root), string(p)))
	}

	info, err := w.FileInfo(target)
	if err != nil {
		return "", err
	}

	rel, err := w.RelPath(root, target)
	if err != nil {
		return "", err
	}

	relSlash := filepath.ToSlash(string(rel))
	if strings.HasPrefix(relSlash, "../") || relSlash == ".." {
		return "", fmt.Errorf("%s is outside project root %s", p, root)
	}

	if !info.IsDir() {
		return adapter.EscapeGlob(relSlash), nil
	}

	if relSlash == "." {
		return "**", nil
	}

	return path.Join(adapter.EscapeGlob(relSlash), "**"), nil
}

// pairFor returns nil for files that are not part of a lib/test pair.
func (w *workflow) pairFor(ctx context.Context, root, file m.Path, args ProjectArgs) (*m.Pair, error) {
	spec, err := w.PathMapper.Resolve(file, root)
	if err != nil {
		if IsSilent(err) {
			return nil, nil
		}

		return nil, err
	}

	if spec.Source.Area == m.AreaTest && spec.TargetRole == m.RoleTest {
		return nil, nil
	}

	result, err := w.LocateOrPropose(ctx, spec, LocateOptions{Exclude: args.Exclude, Anywhere: args.Anywhere})
	if err != nil {
		return nil, err
	}

	counterpart := result.SuggestedPath()
	if result.Found {
		counterpart = result.Path
	}

	return &m.Pair{
		Source:      w.relative(root, file),
		Role:        spec.TargetRole,
		Counterpart: w.relative(root, counterpart),
		Exists:      result.Found,
	}, nil
}

func (w *workflow) relative(root, target m.Path) m.Path {
	rel, err := w.RelPath(root, target)
	if err != nil {
		return target
	}

	return rel
}
