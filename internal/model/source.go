// Package model defines the value types shared by the counterpart tool.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// Area identifies which project tree a file belongs to.
type Area string

const (
	// AreaLib is the tree holding implementation files.
	AreaLib Area = "lib"
	// AreaTest is the tree holding test files, mirroring AreaLib.
	AreaTest Area = "test"
)

// Opposite returns the area a counterpart of a file in a would live in.
func (a Area) Opposite() Area {
	if a == AreaLib {
		return AreaTest
	}

	return AreaLib
}

// SourcePath is a file path decomposed against the project layout.
//
// For /proj/lib/foo/bar.ex: Root=/proj, Area=lib, Subpath=foo, Stem=bar, Extension=.ex.
type SourcePath struct {
	Root      Path
	Area      Area
	Subpath   Path // directories between the area and the file, may be empty
	Stem      string
	Extension string
}

// FileName returns the base name of the file.
func (s SourcePath) FileName() string {
	return s.Stem + s.Extension
}

// Dir returns the absolute directory holding the file.
func (s SourcePath) Dir() Path {
	return Path(filepath.Join(string(s.Root), string(s.Area), string(s.Subpath)))
}

// FullPath returns the reassembled file path.
func (s SourcePath) FullPath() Path {
	return Path(filepath.Join(string(s.Dir()), s.FileName()))
}
