package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

const implementationExt = ".ex"

// NamingRule is one row of the convention table. A file whose stem contains
// Marker is a test under this convention. SwapArea tests map to the opposite
// area; the others always map to lib, so colocated tests stay in place.
type NamingRule struct {
	Convention m.Convention
	Marker     string
	TestExt    string
	ImplExt    string
	SwapArea   bool
}

// DefaultRules lists the supported conventions in priority order.
var DefaultRules = []NamingRule{
	{Convention: m.ConventionSuffix, Marker: ".test", TestExt: ".exs", ImplExt: implementationExt},
	{Convention: m.ConventionUnderscore, Marker: "_test", TestExt: ".exs", ImplExt: implementationExt, SwapArea: true},
}

// DefaultExtensions are the file extensions recognized as project files.
var DefaultExtensions = []string{".ex", ".exs"}

// PathMapper classifies project files and computes their counterparts.
// It never touches the filesystem.
type PathMapper interface {
	Classify(path, root m.Path) (m.SourcePath, error)
	ComputeCounterpart(source m.SourcePath) (m.CounterpartSpec, error)
	Resolve(path, root m.Path) (m.CounterpartSpec, error)
}

type pathMapper struct {
	rules      []NamingRule
	fallback   NamingRule
	extensions []string
}

// MapperOption customizes a PathMapper.
type MapperOption func(*pathMapper)

// WithDefaultConvention selects the naming used when a file carries no test
// marker and a new test name has to be invented.
func WithDefaultConvention(convention m.Convention) MapperOption {
	return func(pm *pathMapper) {
		for _, rule := range pm.rules {
			if rule.Convention == convention {
				pm.fallback = rule
				return
			}
		}
	}
}

// WithExtensions restricts classification to files with the given extensions.
func WithExtensions(extensions []string) MapperOption {
	return func(pm *pathMapper) {
		if len(extensions) == 0 {
			return
		}

		pm.extensions = normalizeExtensions(extensions)
	}
}

// NewPathMapper builds a PathMapper over DefaultRules. Without options it
// recognizes .ex/.exs files and invents underscore-style test names.
func NewPathMapper(opts ...MapperOption) PathMapper {
	pm := &pathMapper{
		rules:      DefaultRules,
		fallback:   DefaultRules[1],
		extensions: DefaultExtensions,
	}

	for _, opt := range opts {
		opt(pm)
	}

	return pm
}

// Classify splits path into root, area, subpath and file name. With an empty
// root the first lib or test segment of the path marks the area.
func (pm *pathMapper) Classify(path, root m.Path) (m.SourcePath, error) {
	if path == "" {
		return m.SourcePath{}, ErrNoActiveFile
	}

	clean := filepath.Clean(string(path))
	if root != "" && !filepath.IsAbs(clean) {
		clean = filepath.Join(string(root), clean)
	}

	var (
		rootDir  string
		segments []string
	)

	if root != "" {
		rootDir = filepath.Clean(string(root))

		rel, err := filepath.Rel(rootDir, clean)
		if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
			return m.SourcePath{}, fmt.Errorf("%w: %s is outside %s", ErrUnrecognizedPath, path, root)
		}

		segments = strings.Split(filepath.ToSlash(rel), "/")
	} else {
		all := strings.Split(filepath.ToSlash(clean), "/")

		idx := slices.IndexFunc(all, isAreaSegment)
		if idx < 0 {
			return m.SourcePath{}, fmt.Errorf("%w: %s has no lib or test segment", ErrUnrecognizedPath, path)
		}

		rootDir = filepath.FromSlash(strings.Join(all[:idx], "/"))
		if rootDir == "" && filepath.IsAbs(clean) {
			rootDir = string(filepath.Separator)
		}

		segments = all[idx:]
	}

	if len(segments) < 2 || !isAreaSegment(segments[0]) {
		return m.SourcePath{}, fmt.Errorf("%w: %s is not under lib or test", ErrUnrecognizedPath, path)
	}

	name := segments[len(segments)-1]
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	if stem == "" || !slices.Contains(pm.extensions, ext) {
		return m.SourcePath{}, fmt.Errorf("%w: %s is not a recognized source file", ErrUnrecognizedPath, path)
	}

	return m.SourcePath{
		Root:      m.Path(rootDir),
		Area:      m.Area(segments[0]),
		Subpath:   m.Path(filepath.FromSlash(strings.Join(segments[1:len(segments)-1], "/"))),
		Stem:      stem,
		Extension: ext,
	}, nil
}

// ComputeCounterpart applies the first rule whose marker appears in the stem.
// Marked files are tests and map to an implementation; unmarked files map to
// test using the fallback convention.
func (pm *pathMapper) ComputeCounterpart(source m.SourcePath) (m.CounterpartSpec, error) {
	spec := m.CounterpartSpec{Source: source}

	rule, isTest := pm.ruleFor(source.Stem)
	if isTest {
		stem := strings.Replace(source.Stem, rule.Marker, "", 1)
		if stem == "" {
			return m.CounterpartSpec{}, fmt.Errorf("%w: %s", ErrUnresolvable, source.FileName())
		}

		spec.Convention = rule.Convention
		spec.TargetRole = m.RoleImplementation
		spec.TargetArea = m.AreaLib
		spec.TargetFileName = stem + rule.ImplExt

		if rule.SwapArea {
			spec.TargetArea = source.Area.Opposite()
		}
	} else {
		spec.Convention = rule.Convention
		spec.TargetRole = m.RoleTest
		spec.TargetArea = m.AreaTest
		spec.TargetFileName = source.Stem + rule.Marker + rule.TestExt
	}

	spec.TargetDirectory = m.Path(filepath.Join(string(source.Root), string(spec.TargetArea), string(source.Subpath)))

	return spec, nil
}

// Resolve classifies path and computes its counterpart in one call.
func (pm *pathMapper) Resolve(path, root m.Path) (m.CounterpartSpec, error) {
	source, err := pm.Classify(path, root)
	if err != nil {
		return m.CounterpartSpec{}, err
	}

	return pm.ComputeCounterpart(source)
}

func (pm *pathMapper) ruleFor(stem string) (NamingRule, bool) {
	for _, rule := range pm.rules {
		if strings.Contains(stem, rule.Marker) {
			return rule, true
		}
	}

	return pm.fallback, false
}

func isAreaSegment(segment string) bool {
	return segment == string(m.AreaLib) || segment == string(m.AreaTest)
}

func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		out = append(out, ext)
	}

	return out
}
