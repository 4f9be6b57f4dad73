package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

// SimpleUI implements UI with plain text. Prompts and messages go to the
// command's stderr so stdout stays machine-readable.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Confirm prints the question and reads one line of input.
func (s *SimpleUI) Confirm(ctx context.Context, message, affirmative string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.errorf("%s [%s/No]: ", message, affirmative)

	answer, err := bufio.NewReader(s.cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	return isAffirmative(answer, affirmative), nil
}

// DisplayError reports a problem the user has to know about.
func (s *SimpleUI) DisplayError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	s.errorf("error: %v\n", err)
}

// DisplayPreview prints the diff of a file that would be created.
func (s *SimpleUI) DisplayPreview(ctx context.Context, path m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("would create %s\n%s", path, diff)

	return nil
}

// DisplayResolution prints a resolve result.
func (s *SimpleUI) DisplayResolution(ctx context.Context, resolution Resolution, format OutputFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if format == FormatYAML {
		out, err := renderResolutionYAML(resolution)
		if err != nil {
			return err
		}

		s.printf("%s", out)

		return nil
	}

	s.printf("%s", renderResolutionText(resolution))

	return nil
}

// DisplayPairs prints the list audit as a table.
func (s *SimpleUI) DisplayPairs(ctx context.Context, pairs []m.Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(pairs) == 0 {
		s.printf("No project files found\n")
		return nil
	}

	s.printf("%s", renderPairsTable(pairs))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
