package domain

import "errors"

// Errors a jump can end with. Only ErrModuleNameNotFound is meant for the
// user; the others make the command decline silently.
var (
	ErrNoActiveFile       = errors.New("no active file")
	ErrUnrecognizedPath   = errors.New("not a recognized project file")
	ErrUnresolvable       = errors.New("counterpart name cannot be derived")
	ErrModuleNameNotFound = errors.New("no module declaration found")
)

// IsSilent reports whether err should end a jump without telling the user.
func IsSilent(err error) bool {
	return errors.Is(err, ErrNoActiveFile) ||
		errors.Is(err, ErrUnrecognizedPath) ||
		errors.Is(err, ErrUnresolvable)
}
