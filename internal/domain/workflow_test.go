package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	adaptermocks "counterpart.dev/pkg/counterpart/internal/adapter/mocks"
	"counterpart.dev/pkg/counterpart/internal/controller"
	uimocks "counterpart.dev/pkg/counterpart/internal/controller/mocks"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

const libContent = "defmodule MyApp.Foo.Bar do\n  def hello, do: :world\nend\n"

func newTestWorkflow(t *testing.T, fs adapter.SourceFSAdapter) (Workflow, *uimocks.MockUI, *adaptermocks.MockEditorAdapter) {
	t.Helper()

	stubs, err := NewStubBuilder(StubConfig{})
	require.NoError(t, err)

	ui := uimocks.NewMockUI(t)
	editor := adaptermocks.NewMockEditorAdapter(t)

	wf := NewWorkflow(fs, editor, ui, NewPathMapper(), NewLocator(fs), stubs)

	return wf, ui, editor
}

func TestWorkflow_Jump_OpensExistingCounterpart(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/foo/bar.ex", libContent)
	testFile := writeProjectFile(t, root, "test/foo/bar_test.exs", "")

	wf, _, editor := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	editor.On("Open", mock.Anything, m.Path(testFile), "code -g").Return(nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{
		ProjectArgs: ProjectArgs{Root: m.Path(root)},
		File:        m.Path(file),
		Editor:      "code -g",
	})
	require.NoError(t, err)

	assert.Equal(t, m.Outcome{State: m.StateOpen, Path: m.Path(testFile)}, outcome)
}

func TestWorkflow_Jump_CreatesTestOnConfirm(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/foo/bar.ex", libContent)
	want := filepath.Join(root, "test", "foo", "bar_test.exs")

	wf, ui, editor := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	ui.On("Confirm", mock.Anything, "Create the test file at "+filepath.Join(root, "test", "foo")+"?", AffirmativeLabel).
		Return(true, nil)
	editor.On("Open", mock.Anything, m.Path(want), "").Return(nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{
		ProjectArgs: ProjectArgs{Root: m.Path(root)},
		File:        m.Path(file),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Outcome{State: m.StateOpen, Path: m.Path(want), Created: true}, outcome)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "defmodule MyApp.Foo.BarTest do\n\tuse ExUnit.Case\n\tdoctest MyApp.Foo.Bar\n\talias MyApp.Foo.Bar\n\nend\n", string(data))
}

func TestWorkflow_Jump_CreatesImplementationFromTest(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "test/foo/bar_test.exs", "defmodule MyApp.Foo.BarTest do\n  use ExUnit.Case\nend\n")
	want := filepath.Join(root, "lib", "foo", "bar.ex")

	wf, ui, editor := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	ui.On("Confirm", mock.Anything, "Create the source file at "+filepath.Join(root, "lib", "foo")+"?", AffirmativeLabel).
		Return(true, nil)
	editor.On("Open", mock.Anything, m.Path(want), "").Return(nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file)})
	require.NoError(t, err)
	assert.True(t, outcome.Created)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "defmodule MyApp.Foo.Bar do\nend\n", string(data))
}

func TestWorkflow_Jump_DeclinedLeavesDiskUntouched(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/foo/bar.ex", libContent)

	wf, ui, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	ui.On("Confirm", mock.Anything, mock.Anything, AffirmativeLabel).Return(false, nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file)})
	require.NoError(t, err)
	assert.Equal(t, m.StateIdle, outcome.State)

	_, err = os.Stat(filepath.Join(root, "test"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorkflow_Jump_AssumeYesSkipsPrompt(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/bar.ex", "defmodule Bar do\nend\n")
	want := filepath.Join(root, "test", "bar_test.exs")

	wf, _, editor := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	editor.On("Open", mock.Anything, m.Path(want), "").Return(nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file), AssumeYes: true})
	require.NoError(t, err)
	assert.Equal(t, m.StateOpen, outcome.State)
	assert.FileExists(t, want)
}

func TestWorkflow_Jump_ModuleNameNotFound(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/foo/bar.ex", "# nothing here\n")

	wf, ui, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	ui.On("Confirm", mock.Anything, mock.Anything, AffirmativeLabel).Return(true, nil)
	ui.On("DisplayError", mock.Anything, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, ErrModuleNameNotFound) && strings.Contains(err.Error(), "bar_test.exs")
	})).Return()

	outcome, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file)})
	require.NoError(t, err)
	assert.Equal(t, m.StateIdle, outcome.State)

	_, err = os.Stat(filepath.Join(root, "test"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorkflow_Jump_SilentNoOps(t *testing.T) {
	root := t.TempDir()
	asset := writeProjectFile(t, root, "assets/logo.png", "")
	markerOnly := writeProjectFile(t, root, "test/_test.exs", "")

	tests := []struct {
		name string
		file m.Path
	}{
		{"no active file", ""},
		{"file outside lib and test", m.Path(asset)},
		{"empty stem after marker", m.Path(markerOnly)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf, _, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())

			outcome, err := wf.Jump(context.Background(), JumpArgs{
				ProjectArgs: ProjectArgs{Root: m.Path(root)},
				File:        tt.file,
			})
			require.NoError(t, err)
			assert.Equal(t, m.Outcome{State: m.StateIdle}, outcome)
		})
	}
}

func TestWorkflow_Jump_DryRunPreviewsStub(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/foo/bar.ex", libContent)
	want := filepath.Join(root, "test", "foo", "bar_test.exs")

	wf, ui, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	ui.On("DisplayPreview", mock.Anything, m.Path(want), mock.MatchedBy(func(diff string) bool {
		return strings.Contains(diff, "+++ "+want) &&
			strings.Contains(diff, "+defmodule MyApp.Foo.BarTest do")
	})).Return(nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file), DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, m.StateIdle, outcome.State)
	assert.NoFileExists(t, want)
}

func TestWorkflow_Jump_RootFromMarker(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "mix.exs", "")
	// The project itself lives under a lib directory, so path inference alone
	// would pick the wrong root.
	project := filepath.Join(root, "lib", "web")
	writeProjectFile(t, project, "mix.exs", "")
	file := writeProjectFile(t, project, "lib/page.ex", "defmodule Web.Page do\nend\n")
	testFile := writeProjectFile(t, project, "test/page_test.exs", "")

	wf, _, editor := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	editor.On("Open", mock.Anything, m.Path(testFile), "").Return(nil)

	outcome, err := wf.Jump(context.Background(), JumpArgs{
		ProjectArgs: ProjectArgs{RootMarker: "mix.exs"},
		File:        m.Path(file),
	})
	require.NoError(t, err)
	assert.Equal(t, m.Path(testFile), outcome.Path)
}

func TestWorkflow_Jump_CreateFailure(t *testing.T) {
	fsMock := adaptermocks.NewMockSourceFSAdapter(t)
	fsMock.On("Search", m.Path("/proj"), "test/foo/bar_test.exs", []string(nil)).Return(nil, nil)
	fsMock.On("ReadFile", m.Path("/proj/lib/foo/bar.ex")).Return([]byte(libContent), nil)
	fsMock.On("CreateFile", m.Path("/proj/test/foo"), "bar_test.exs", mock.Anything).Return(m.Path(""), os.ErrPermission)

	wf, _, _ := newTestWorkflow(t, fsMock)

	outcome, err := wf.Jump(context.Background(), JumpArgs{
		ProjectArgs: ProjectArgs{Root: "/proj"},
		File:        "/proj/lib/foo/bar.ex",
		AssumeYes:   true,
	})
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, m.StateCreating, outcome.State)
}

func TestWorkflow_Jump_ConfirmFailure(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/bar.ex", libContent)

	wf, ui, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	ui.On("Confirm", mock.Anything, mock.Anything, AffirmativeLabel).Return(false, context.Canceled)

	outcome, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, m.StateConfirming, outcome.State)
}

func TestWorkflow_Jump_EditorFailure(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/bar.ex", libContent)
	testFile := writeProjectFile(t, root, "test/bar_test.exs", "")

	wf, _, editor := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
	editor.On("Open", mock.Anything, m.Path(testFile), "nope").Return(errors.New("exec: not found"))

	_, err := wf.Jump(context.Background(), JumpArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file), Editor: "nope"})
	require.Error(t, err)
}

func TestWorkflow_Resolve(t *testing.T) {
	root := t.TempDir()
	file := writeProjectFile(t, root, "lib/foo/bar.ex", libContent)
	testFile := writeProjectFile(t, root, "test/foo/bar_test.exs", "")

	t.Run("reports the counterpart", func(t *testing.T) {
		wf, ui, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())
		ui.On("DisplayResolution", mock.Anything, mock.MatchedBy(func(r controller.Resolution) bool {
			return r.Result.Found &&
				r.Result.Path == m.Path(testFile) &&
				r.Spec.TargetRole == m.RoleTest
		}), controller.FormatYAML).Return(nil)

		err := wf.Resolve(context.Background(), ResolveArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(file), Format: controller.FormatYAML})
		require.NoError(t, err)
	})

	t.Run("unrecognized file is an error", func(t *testing.T) {
		wf, _, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())

		err := wf.Resolve(context.Background(), ResolveArgs{ProjectArgs: ProjectArgs{Root: m.Path(root)}, File: m.Path(filepath.Join(root, "README.md"))})
		require.ErrorIs(t, err, ErrUnrecognizedPath)
	})

	t.Run("no file", func(t *testing.T) {
		wf, _, _ := newTestWorkflow(t, adapter.NewLocalSourceFSAdapter())

		err := wf.Resolve(context.Background(), ResolveArgs{})
		require.ErrorIs(t, err, ErrNoActiveFile)
	})
}

func TestConfirmationMessage(t *testing.T) {
	spec := m.CounterpartSpec{TargetRole: m.RoleImplementation}
	result := m.LocateResult{SuggestedDirectory: "/proj/lib/foo"}

	assert.Equal(t, "Create the source file at /proj/lib/foo?", confirmationMessage(spec, result))

	spec.TargetRole = m.RoleTest
	result.SuggestedDirectory = "/proj/test/foo"
	assert.Equal(t, "Create the test file at /proj/test/foo?", confirmationMessage(spec, result))
}
