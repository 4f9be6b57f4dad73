package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"counterpart.dev/pkg/counterpart/internal/domain"
)

var assumeYesFlag bool
var dryRunFlag bool
var editorFlag string

// jumpCmd represents the jump command.
var jumpCmd = newJumpCmd()

func newJumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jump [file]",
		Short: "Open the test of a source file, or the source of a test",
		Long:  jumpLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := parseFile(args)
			if err != nil {
				return err
			}

			project, err := projectArgs()
			if err != nil {
				return err
			}

			outcome, err := workflow.Jump(context.Background(), domain.JumpArgs{
				ProjectArgs: project,
				File:        file,
				AssumeYes:   assumeYesFlag,
				DryRun:      dryRunFlag,
				Editor:      viper.GetString(editorCommandKey),
			})
			if err != nil {
				return err
			}

			slog.Info("Jump finished", "file", file, "state", outcome.State, "path", outcome.Path, "created", outcome.Created)

			return nil
		},
	}

	configureJumpFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(jumpCmd)
}

func configureJumpFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&assumeYesFlag, "yes", "y", false, "create a missing counterpart without asking")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "show the file that would be created and stop")
	cmd.Flags().StringVarP(&editorFlag, editorFlagName, "e", viper.GetString(editorCommandKey), "command used to open the counterpart (path is appended)")
	bindFlagToConfig(cmd.Flags().Lookup(editorFlagName), editorCommandKey)
}
