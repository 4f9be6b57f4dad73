package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"counterpart.dev/pkg/counterpart/internal/controller"
	"counterpart.dev/pkg/counterpart/internal/domain"
)

var formatFlag string

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the counterpart of a file without opening or creating it",
		Long: `Classify FILE, compute its counterpart and report whether it exists.
Unlike jump, a file outside the lib/test layout is reported as an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := parseFormat(formatFlag)
			if err != nil {
				return err
			}

			file, err := parseFile(args)
			if err != nil {
				return err
			}

			project, err := projectArgs()
			if err != nil {
				return err
			}

			return workflow.Resolve(context.Background(), domain.ResolveArgs{
				ProjectArgs: project,
				File:        file,
				Format:      format,
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(controller.FormatText), "output format: text or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func parseFormat(value string) (controller.OutputFormat, error) {
	switch controller.OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case controller.FormatText, "":
		return controller.FormatText, nil
	case controller.FormatYAML, "yml":
		return controller.FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or yaml)", value)
	}
}
