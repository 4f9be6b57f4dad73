package model

// State is a step of the jump flow.
type State int

const (
	// StateIdle is both the start and the no-op terminal state.
	StateIdle State = iota
	// StateClassifying decides whether the file belongs to the project layout.
	StateClassifying
	// StateComputingCounterpart applies the naming rules.
	StateComputingCounterpart
	// StateSearching looks for the counterpart on disk.
	StateSearching
	// StateConfirming asks the user whether to create the counterpart.
	StateConfirming
	// StateCreating builds the stub and writes the file.
	StateCreating
	// StateOpen is the success terminal state.
	StateOpen
)

// String returns a human-readable label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassifying:
		return "classifying"
	case StateComputingCounterpart:
		return "computing_counterpart"
	case StateSearching:
		return "searching"
	case StateConfirming:
		return "confirming"
	case StateCreating:
		return "creating"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one jump.
type Outcome struct {
	State   State
	Path    Path
	Created bool
}
