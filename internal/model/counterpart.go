package model

import "path/filepath"

// Convention names a test file naming style.
type Convention string

const (
	// ConventionSuffix names tests <stem>.test.exs.
	ConventionSuffix Convention = "suffix"
	// ConventionUnderscore names tests <stem>_test.exs.
	ConventionUnderscore Convention = "underscore"
)

// Role tells whether a file is a test or the code under test.
type Role string

const (
	// RoleTest marks a test file.
	RoleTest Role = "test"
	// RoleImplementation marks a file under test.
	RoleImplementation Role = "implementation"
)

// CounterpartSpec describes where the counterpart of a file should live.
type CounterpartSpec struct {
	Source          SourcePath
	Convention      Convention
	TargetRole      Role
	TargetArea      Area
	TargetDirectory Path
	TargetFileName  string
}

// TargetPath returns the absolute path of the counterpart.
func (c CounterpartSpec) TargetPath() Path {
	return Path(filepath.Join(string(c.TargetDirectory), c.TargetFileName))
}

// RelativeTarget returns the counterpart path relative to the project root.
func (c CounterpartSpec) RelativeTarget() Path {
	rel, err := filepath.Rel(string(c.Source.Root), string(c.TargetPath()))
	if err != nil {
		return c.TargetPath()
	}

	return Path(rel)
}

// LocateResult is the outcome of searching for a counterpart.
//
// When Found is false, SuggestedDirectory and SuggestedFileName tell where
// the counterpart would be created.
type LocateResult struct {
	Found              bool
	Path               Path
	Matches            []Path
	SuggestedDirectory Path
	SuggestedFileName  string
}

// SuggestedPath joins the suggested directory and file name.
func (r LocateResult) SuggestedPath() Path {
	return Path(filepath.Join(string(r.SuggestedDirectory), r.SuggestedFileName))
}

// Stub is the generated content for a new counterpart file.
type Stub struct {
	Module  string
	Content string
}

// Pair links a project file to its counterpart.
type Pair struct {
	Source      Path
	Role        Role
	Counterpart Path
	Exists      bool
}
