// Package cmd provides the root command and CLI setup for counterpart.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	"counterpart.dev/pkg/counterpart/internal/controller"
	"counterpart.dev/pkg/counterpart/internal/domain"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var editorAdapter adapter.EditorAdapter

// workflow is built once flags and config are known. Tests set it beforehand.
var workflow domain.Workflow

// rootDirFlag overrides project root detection.
var rootDirFlag string

// excludePatterns is a root-level flag listing globs never searched.
var excludePatterns []string

var conventionFlag string
var anywhereFlag bool
var logFileFlag string
var verboseFlag bool

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	editorAdapter = adapter.NewLocalEditorAdapter(os.Stdout)
}

const layoutHelp = `Files are matched against a mirrored layout:
  lib/foo/bar.ex   <->  test/foo/bar_test.exs   (underscore convention)
  lib/foo/bar.ex   <->  test/foo/bar.test.exs   (suffix convention)`

const rootLongDescription = `Counterpart jumps between a source file and its test in projects that keep
implementation under lib/ and tests under a mirrored test/ tree. When the
counterpart does not exist yet it offers to create it with a stub.

` + layoutHelp

const jumpLongDescription = `Find the counterpart of FILE and open it. When it is missing, ask whether to
create it, write a stub and open the new file.

Without an editor command the resolved path is printed, so editors can run
counterpart and open whatever it prints.

` + layoutHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "counterpart",
		Short:         "Jump between source files and their tests",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(logFileFlag, verboseFlag)
			return setupWorkflow(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&rootDirFlag, rootFlagName, "r", "", "project root (default: nearest directory holding the root marker)")

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude paths matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&conventionFlag, conventionFlagName, viper.GetString(conventionKey), "naming for new tests: underscore or suffix")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(conventionFlagName), conventionKey)

	cmd.PersistentFlags().BoolVarP(&anywhereFlag, anywhereFlagName, "a", viper.GetBool(anywhereKey), "match the counterpart name anywhere in its tree")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(anywhereFlagName), anywhereKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFlagName, "", "log file path")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// setupWorkflow builds the workflow from the loaded configuration.
func setupWorkflow(cmd *cobra.Command) error {
	if workflow != nil {
		return nil
	}

	stubs, err := domain.NewStubBuilder(domain.StubConfig{
		ModulePattern: viper.GetString(modulePatternKey),
		TestTemplate:  viper.GetString(testTemplateKey),
		ImplTemplate:  viper.GetString(implTemplateKey),
	})
	if err != nil {
		return err
	}

	mapper := domain.NewPathMapper(
		domain.WithDefaultConvention(parseConvention(viper.GetString(conventionKey))),
		domain.WithExtensions(viper.GetStringSlice(extensionsKey)),
	)

	ui := controller.NewUI(cmd, controller.IsTTY(os.Stdin) && controller.IsTTY(os.Stderr))

	workflow = domain.NewWorkflow(
		fsAdapter,
		editorAdapter,
		ui,
		mapper,
		domain.NewLocator(fsAdapter),
		stubs,
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// projectArgs collects the flags shared by every command. An explicit root
// disables marker detection.
func projectArgs() (domain.ProjectArgs, error) {
	args := domain.ProjectArgs{
		Exclude:  viper.GetStringSlice(excludeConfigKey),
		Anywhere: viper.GetBool(anywhereKey),
	}

	if rootDirFlag == "" {
		args.RootMarker = viper.GetString(rootMarkerKey)
		return args, nil
	}

	root, err := filepath.Abs(rootDirFlag)
	if err != nil {
		return domain.ProjectArgs{}, fmt.Errorf("resolve root %s: %w", rootDirFlag, err)
	}

	args.Root = m.Path(root)

	return args, nil
}

// parseFile turns the positional FILE argument into an absolute path.
// No argument yields an empty path.
func parseFile(args []string) (m.Path, error) {
	if len(args) == 0 || args[0] == "" {
		return "", nil
	}

	abs, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", args[0], err)
	}

	return m.Path(abs), nil
}

// parsePaths turns list arguments into absolute paths, relative to the
// working directory like the FILE argument of jump.
func parsePaths(args []string) ([]m.Path, error) {
	paths := make([]m.Path, 0, len(args))

	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}

		paths = append(paths, m.Path(abs))
	}

	return paths, nil
}
