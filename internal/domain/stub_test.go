package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

func TestStubBuilder_BuildStub(t *testing.T) {
	builder, err := NewStubBuilder(StubConfig{})
	require.NoError(t, err)

	t.Run("test stub from implementation", func(t *testing.T) {
		stub, err := builder.BuildStub([]byte("defmodule MyApp.Foo do\nend\n"), m.RoleTest)
		require.NoError(t, err)

		assert.Equal(t, "MyApp.Foo", stub.Module)
		assert.Equal(t,
			"defmodule MyApp.FooTest do\n\tuse ExUnit.Case\n\tdoctest MyApp.Foo\n\talias MyApp.Foo\n\nend\n",
			stub.Content)
	})

	t.Run("first module wins", func(t *testing.T) {
		content := "# helpers\ndefmodule   MyApp.Outer do\n  defmodule Inner do\n  end\nend\n"

		stub, err := builder.BuildStub([]byte(content), m.RoleTest)
		require.NoError(t, err)
		assert.Equal(t, "MyApp.Outer", stub.Module)
	})

	t.Run("implementation stub drops Test suffix", func(t *testing.T) {
		stub, err := builder.BuildStub([]byte("defmodule MyApp.FooTest do\n  use ExUnit.Case\nend\n"), m.RoleImplementation)
		require.NoError(t, err)

		assert.Equal(t, "MyApp.Foo", stub.Module)
		assert.Equal(t, "defmodule MyApp.Foo do\nend\n", stub.Content)
	})

	t.Run("no module declaration", func(t *testing.T) {
		_, err := builder.BuildStub([]byte("IO.puts(\"hello\")\n"), m.RoleTest)
		require.ErrorIs(t, err, ErrModuleNameNotFound)
		assert.False(t, IsSilent(err))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := builder.BuildStub(nil, m.RoleTest)
		require.ErrorIs(t, err, ErrModuleNameNotFound)
	})
}

func TestNewStubBuilder_Config(t *testing.T) {
	t.Run("custom template", func(t *testing.T) {
		builder, err := NewStubBuilder(StubConfig{TestTemplate: "defmodule {{.Module}}Spec do\nend\n"})
		require.NoError(t, err)

		stub, err := builder.BuildStub([]byte("defmodule Foo do\nend"), m.RoleTest)
		require.NoError(t, err)
		assert.Equal(t, "defmodule FooSpec do\nend\n", stub.Content)
	})

	t.Run("custom pattern", func(t *testing.T) {
		builder, err := NewStubBuilder(StubConfig{ModulePattern: `defprotocol\s+(\S+)\s+do`})
		require.NoError(t, err)

		stub, err := builder.BuildStub([]byte("defprotocol Size do\nend"), m.RoleTest)
		require.NoError(t, err)
		assert.Equal(t, "Size", stub.Module)
	})

	tests := []struct {
		name string
		cfg  StubConfig
	}{
		{"invalid pattern", StubConfig{ModulePattern: `defmodule (`}},
		{"pattern without group", StubConfig{ModulePattern: `defmodule \S+`}},
		{"invalid test template", StubConfig{TestTemplate: "{{.Module"}},
		{"invalid implementation template", StubConfig{ImplTemplate: "{{end}}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStubBuilder(tt.cfg)
			require.Error(t, err)
		})
	}
}
