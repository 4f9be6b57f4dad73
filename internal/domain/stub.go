package domain

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

// DefaultModulePattern captures the name of the first module declared in a file.
const DefaultModulePattern = `defmodule\s+(\S+)\s+do\b`

// DefaultTestTemplate is the skeleton written into a new test file.
const DefaultTestTemplate = "defmodule {{.Module}}Test do\n\tuse ExUnit.Case\n\tdoctest {{.Module}}\n\talias {{.Module}}\n\nend\n"

// DefaultImplTemplate is the skeleton written into a new implementation file.
const DefaultImplTemplate = "defmodule {{.Module}} do\nend\n"

// StubBuilder renders the content of a freshly created counterpart.
type StubBuilder interface {
	BuildStub(content []byte, role m.Role) (m.Stub, error)
}

// StubConfig holds the overridable pieces of stub generation. Empty fields
// fall back to the defaults above.
type StubConfig struct {
	ModulePattern string
	TestTemplate  string
	ImplTemplate  string
}

type stubBuilder struct {
	pattern *regexp.Regexp
	test    *template.Template
	impl    *template.Template
}

// NewStubBuilder compiles the module pattern and templates up front so a bad
// configuration fails before anything is written.
func NewStubBuilder(cfg StubConfig) (StubBuilder, error) {
	patternText := firstNonEmpty(cfg.ModulePattern, DefaultModulePattern)

	pattern, err := regexp.Compile(patternText)
	if err != nil {
		return nil, fmt.Errorf("invalid module pattern %q: %w", patternText, err)
	}

	if pattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("module pattern %q must have a capture group", patternText)
	}

	test, err := template.New("test").Parse(firstNonEmpty(cfg.TestTemplate, DefaultTestTemplate))
	if err != nil {
		return nil, fmt.Errorf("invalid test template: %w", err)
	}

	impl, err := template.New("impl").Parse(firstNonEmpty(cfg.ImplTemplate, DefaultImplTemplate))
	if err != nil {
		return nil, fmt.Errorf("invalid implementation template: %w", err)
	}

	return &stubBuilder{pattern: pattern, test: test, impl: impl}, nil
}

// BuildStub extracts the module name from content and renders the template
// for role. An implementation stub drops the Test suffix of the test module.
func (sb *stubBuilder) BuildStub(content []byte, role m.Role) (m.Stub, error) {
	match := sb.pattern.FindSubmatch(content)
	if match == nil || len(bytes.TrimSpace(match[1])) == 0 {
		return m.Stub{}, ErrModuleNameNotFound
	}

	module := string(bytes.TrimSpace(match[1]))
	tmpl := sb.test

	if role == m.RoleImplementation {
		tmpl = sb.impl

		if trimmed := strings.TrimSuffix(module, "Test"); trimmed != "" {
			module = trimmed
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Module string }{Module: module}); err != nil {
		return m.Stub{}, fmt.Errorf("render stub for %s: %w", module, err)
	}

	return m.Stub{Module: module, Content: buf.String()}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
