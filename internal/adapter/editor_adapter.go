package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

// EditorAdapter brings a document to the foreground.
type EditorAdapter interface {
	// Open shows path using command. An empty command prints the path so a
	// calling editor or shell can open it.
	Open(ctx context.Context, path m.Path, command string) error
}

// LocalEditorAdapter runs the configured editor command with os/exec.
type LocalEditorAdapter struct {
	out io.Writer
}

// NewLocalEditorAdapter constructs a LocalEditorAdapter printing to out when
// no editor command is configured.
func NewLocalEditorAdapter(out io.Writer) *LocalEditorAdapter {
	return &LocalEditorAdapter{out: out}
}

// Open runs command with path appended as the last argument.
func (a *LocalEditorAdapter) Open(ctx context.Context, path m.Path, command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		_, err := fmt.Fprintln(a.out, string(path))
		return err
	}

	// #nosec G204 - the editor command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], string(path))...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = a.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, args[0], err)
	}

	return nil
}
