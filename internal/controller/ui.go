// Package controller provides the user-facing side of the counterpart CLI:
// confirmation prompts and result rendering.
package controller

import (
	"context"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

// OutputFormat selects how resolutions are printed.
type OutputFormat string

// Available OutputFormat values.
const (
	FormatText OutputFormat = "text"
	FormatYAML OutputFormat = "yaml"
)

// Resolution is what `resolve` reports about a file.
type Resolution struct {
	Spec   m.CounterpartSpec
	Result m.LocateResult
}

// UI defines the interactions the workflow needs from the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Confirm asks a yes/no question whose positive answer is labelled
	// affirmative. It reports false when the user declines or input ends.
	Confirm(ctx context.Context, message, affirmative string) (bool, error)
	DisplayError(ctx context.Context, err error)
	DisplayPreview(ctx context.Context, path m.Path, diff string) error
	DisplayResolution(ctx context.Context, resolution Resolution, format OutputFormat) error
	DisplayPairs(ctx context.Context, pairs []m.Pair) error
}
