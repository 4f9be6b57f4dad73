package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"counterpart.dev/pkg/counterpart/internal/domain"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

var listParallelFlag int
var missingOnlyFlag bool

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List project files with their counterparts",
		Long: `List every file under lib/ and test/ (or under the given paths) with its
counterpart and whether that counterpart exists.`,
		RunE: func(_ *cobra.Command, args []string) error {
			paths, err := parsePaths(args)
			if err != nil {
				return err
			}

			project, err := projectArgs()
			if err != nil {
				return err
			}

			if project.Root == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("working directory: %w", err)
				}

				project.Root = m.Path(cwd)
			}

			return workflow.List(context.Background(), domain.ListArgs{
				ProjectArgs: project,
				Paths:       paths,
				Parallel:    viper.GetInt(listParallelKey),
				MissingOnly: missingOnlyFlag,
			})
		},
	}

	configureListFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func configureListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&listParallelFlag, parallelFlagName, "p", viper.GetInt(listParallelKey), "number of files resolved in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), listParallelKey)
	cmd.Flags().BoolVar(&missingOnlyFlag, "missing", false, "only show files whose counterpart is missing")
}
