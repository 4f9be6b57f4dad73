package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	"counterpart.dev/pkg/counterpart/internal/domain"
	domainmocks "counterpart.dev/pkg/counterpart/internal/domain/mocks"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

func TestListCmd_DefaultsToWorkingDirectory(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	mockWorkflow.On("List", mock.Anything, domain.ListArgs{
		ProjectArgs: domain.ProjectArgs{
			Root:       m.Path(cwd),
			RootMarker: defaultRootMarker,
			Exclude:    adapter.DefaultExcludes,
		},
		Paths:    []m.Path{},
		Parallel: defaultParallel,
	}).Return(nil)

	cmd.SetArgs([]string{"list"})
	err = cmd.Execute()
	require.NoError(t, err)
}

func TestListCmd_FlagsArePassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	root := t.TempDir()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	mockWorkflow.On("List", mock.Anything, domain.ListArgs{
		ProjectArgs: domain.ProjectArgs{
			Root:    m.Path(root),
			Exclude: adapter.DefaultExcludes,
		},
		Paths:       []m.Path{m.Path(filepath.Join(cwd, "lib", "accounts")), m.Path(filepath.Join(cwd, "test"))},
		Parallel:    8,
		MissingOnly: true,
	}).Return(nil)

	cmd.SetArgs([]string{"list", "lib/accounts", "test", "-r", root, "-p", "8", "--missing"})
	err = cmd.Execute()
	require.NoError(t, err)
}

func TestListCmd_RelativePathsFollowWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mix.exs"), "")
	writeFile(t, filepath.Join(root, "lib", "b", "c.ex"), "defmodule B.C do\nend\n")
	writeFile(t, filepath.Join(root, "lib", "a.ex"), "defmodule A do\nend\n")

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join(root, "lib")))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	originalWorkflow := workflow
	workflow = nil
	defer func() { workflow = originalWorkflow }()

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(&bytes.Buffer{})

	cmd.SetArgs([]string{"list", "b"})
	err = cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "lib/b/c.ex")
	assert.Contains(t, out.String(), "test/b/c_test.exs")
	assert.NotContains(t, out.String(), "lib/a.ex")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
