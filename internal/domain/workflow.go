package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	"counterpart.dev/pkg/counterpart/internal/controller"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

// AffirmativeLabel is the label of the button that creates a missing counterpart.
const AffirmativeLabel = "Create"

// ProjectArgs locate the project a command works on.
type ProjectArgs struct {
	// Root is the project root. When empty it is detected from RootMarker,
	// then from the first lib or test segment of the file path.
	Root       m.Path
	RootMarker string
	Exclude    []string
	Anywhere   bool
}

// JumpArgs contains the arguments for a jump to the counterpart of File.
type JumpArgs struct {
	ProjectArgs
	File      m.Path
	AssumeYes bool
	DryRun    bool
	Editor    string
}

// ResolveArgs contains the arguments for reporting the counterpart of File.
type ResolveArgs struct {
	ProjectArgs
	File   m.Path
	Format controller.OutputFormat
}

// ListArgs contains the arguments for auditing every pair of a project.
type ListArgs struct {
	ProjectArgs
	Paths       []m.Path
	Parallel    int
	MissingOnly bool
}

// Workflow drives the commands of the tool.
type Workflow interface {
	Jump(ctx context.Context, args JumpArgs) (m.Outcome, error)
	Resolve(ctx context.Context, args ResolveArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.EditorAdapter
	controller.UI
	PathMapper
	Locator
	StubBuilder
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	editor adapter.EditorAdapter,
	ui controller.UI,
	mapper PathMapper,
	locator Locator,
	stubs StubBuilder,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		EditorAdapter:   editor,
		UI:              ui,
		PathMapper:      mapper,
		Locator:         locator,
		StubBuilder:     stubs,
	}
}

// Jump runs the find-or-create flow for one file. Files outside the project
// layout end in StateIdle with a nil error; only filesystem and UI failures
// are returned.
func (w *workflow) Jump(ctx context.Context, args JumpArgs) (m.Outcome, error) {
	state := w.transition(m.StateIdle, m.StateClassifying, args.File)

	if args.File == "" {
		return w.decline(state, ErrNoActiveFile)
	}

	root := w.projectRoot(args.File, args.ProjectArgs)

	source, err := w.Classify(args.File, root)
	if err != nil {
		return w.decline(state, err)
	}

	state = w.transition(state, m.StateComputingCounterpart, args.File)

	spec, err := w.ComputeCounterpart(source)
	if err != nil {
		return w.decline(state, err)
	}

	state = w.transition(state, m.StateSearching, spec.TargetPath())

	result, err := w.LocateOrPropose(ctx, spec, LocateOptions{Exclude: args.Exclude, Anywhere: args.Anywhere})
	if err != nil {
		return m.Outcome{State: state}, err
	}

	if result.Found {
		return w.open(ctx, state, result.Path, args.Editor, false)
	}

	state = w.transition(state, m.StateConfirming, result.SuggestedPath())

	if args.DryRun {
		return w.preview(ctx, args.File, spec, result)
	}

	accepted := args.AssumeYes
	if !accepted {
		accepted, err = w.Confirm(ctx, confirmationMessage(spec, result), AffirmativeLabel)
		if err != nil {
			return m.Outcome{State: state}, err
		}
	}

	if !accepted {
		w.transition(state, m.StateIdle, result.SuggestedPath())
		return m.Outcome{State: m.StateIdle}, nil
	}

	state = w.transition(state, m.StateCreating, result.SuggestedPath())

	stub, err := w.stubFor(args.File, spec)
	if errors.Is(err, ErrModuleNameNotFound) {
		w.DisplayError(ctx, fmt.Errorf("cannot create %s: %w in %s", result.SuggestedFileName, err, args.File))
		w.transition(state, m.StateIdle, args.File)

		return m.Outcome{State: m.StateIdle}, nil
	}

	if err != nil {
		return m.Outcome{State: state}, err
	}

	created, err := w.CreateFile(result.SuggestedDirectory, result.SuggestedFileName, []byte(stub.Content))
	if err != nil {
		slog.Error("Failed to create counterpart", "path", result.SuggestedPath(), "error", err)
		return m.Outcome{State: state}, fmt.Errorf("create %s: %w", result.SuggestedPath(), err)
	}

	return w.open(ctx, state, created, args.Editor, true)
}

// Resolve reports the counterpart of a file without prompting or writing.
func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) error {
	if args.File == "" {
		return ErrNoActiveFile
	}

	root := w.projectRoot(args.File, args.ProjectArgs)

	spec, err := w.PathMapper.Resolve(args.File, root)
	if err != nil {
		return err
	}

	result, err := w.LocateOrPropose(ctx, spec, LocateOptions{Exclude: args.Exclude, Anywhere: args.Anywhere})
	if err != nil {
		return err
	}

	return w.DisplayResolution(ctx, controller.Resolution{Spec: spec, Result: result}, args.Format)
}

func (w *workflow) open(ctx context.Context, from m.State, path m.Path, editor string, created bool) (m.Outcome, error) {
	w.transition(from, m.StateOpen, path)

	if err := w.Open(ctx, path, editor); err != nil {
		return m.Outcome{State: from, Path: path, Created: created}, err
	}

	return m.Outcome{State: m.StateOpen, Path: path, Created: created}, nil
}

func (w *workflow) decline(from m.State, err error) (m.Outcome, error) {
	if !IsSilent(err) {
		return m.Outcome{State: from}, err
	}

	slog.Debug("Declining to jump", "state", from, "reason", err)

	return m.Outcome{State: m.StateIdle}, nil
}

func (w *workflow) preview(ctx context.Context, file m.Path, spec m.CounterpartSpec, result m.LocateResult) (m.Outcome, error) {
	stub, err := w.stubFor(file, spec)
	if errors.Is(err, ErrModuleNameNotFound) {
		w.DisplayError(ctx, fmt.Errorf("cannot create %s: %w in %s", result.SuggestedFileName, err, file))
		return m.Outcome{State: m.StateIdle}, nil
	}

	if err != nil {
		return m.Outcome{State: m.StateConfirming}, err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		B:        difflib.SplitLines(stub.Content),
		FromFile: "/dev/null",
		ToFile:   string(result.SuggestedPath()),
		Context:  3,
	})
	if err != nil {
		return m.Outcome{State: m.StateConfirming}, fmt.Errorf("render preview: %w", err)
	}

	if err := w.DisplayPreview(ctx, result.SuggestedPath(), diff); err != nil {
		return m.Outcome{State: m.StateConfirming}, err
	}

	return m.Outcome{State: m.StateIdle}, nil
}

func (w *workflow) stubFor(file m.Path, spec m.CounterpartSpec) (m.Stub, error) {
	content, err := w.ReadFile(file)
	if err != nil {
		return m.Stub{}, fmt.Errorf("read %s: %w", file, err)
	}

	return w.BuildStub(content, spec.TargetRole)
}

// projectRoot picks the explicit root, else the nearest marker directory.
// An empty result lets Classify infer the root from the path.
func (w *workflow) projectRoot(file m.Path, args ProjectArgs) m.Path {
	if args.Root != "" || args.RootMarker == "" {
		return args.Root
	}

	root, err := w.FindProjectRoot(file, args.RootMarker)
	if err != nil {
		slog.Debug("No project root marker found", "file", file, "marker", args.RootMarker, "error", err)
		return ""
	}

	return root
}

func (w *workflow) transition(from, to m.State, path m.Path) m.State {
	slog.Debug("Jump state change", "from", from, "to", to, "path", path)
	return to
}

func confirmationMessage(spec m.CounterpartSpec, result m.LocateResult) string {
	kind := "test"
	if spec.TargetRole == m.RoleImplementation {
		kind = "source"
	}

	return fmt.Sprintf("Create the %s file at %s?", kind, result.SuggestedDirectory)
}
