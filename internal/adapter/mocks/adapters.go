// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockEditorAdapter is a mock implementation of adapter.EditorAdapter.
type MockEditorAdapter struct {
	mock.Mock
}

// NewMockEditorAdapter creates a MockEditorAdapter whose expectations are asserted on cleanup.
func NewMockEditorAdapter(t testingT) *MockEditorAdapter {
	me := &MockEditorAdapter{}
	me.Mock.Test(t)

	t.Cleanup(func() { me.AssertExpectations(t) })

	return me
}

// Open provides a mock function.
func (me *MockEditorAdapter) Open(ctx context.Context, path m.Path, command string) error {
	return me.Called(ctx, path, command).Error(0)
}

// MockSourceFSAdapter is a mock implementation of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// NewMockSourceFSAdapter creates a MockSourceFSAdapter whose expectations are asserted on cleanup.
func NewMockSourceFSAdapter(t testingT) *MockSourceFSAdapter {
	ms := &MockSourceFSAdapter{}
	ms.Mock.Test(t)

	t.Cleanup(func() { ms.AssertExpectations(t) })

	return ms
}

// ReadFile provides a mock function.
func (ms *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	ret := ms.Called(path)

	content, _ := ret.Get(0).([]byte)

	return content, ret.Error(1)
}

// FileInfo provides a mock function.
func (ms *MockSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	ret := ms.Called(path)

	info, _ := ret.Get(0).(os.FileInfo)

	return info, ret.Error(1)
}

// FindProjectRoot provides a mock function.
func (ms *MockSourceFSAdapter) FindProjectRoot(startPath m.Path, marker string) (m.Path, error) {
	ret := ms.Called(startPath, marker)

	root, _ := ret.Get(0).(m.Path)

	return root, ret.Error(1)
}

// Search provides a mock function.
func (ms *MockSourceFSAdapter) Search(root m.Path, pattern string, exclude []string) ([]m.Path, error) {
	ret := ms.Called(root, pattern, exclude)

	matches, _ := ret.Get(0).([]m.Path)

	return matches, ret.Error(1)
}

// CreateFile provides a mock function.
func (ms *MockSourceFSAdapter) CreateFile(dir m.Path, name string, content []byte) (m.Path, error) {
	ret := ms.Called(dir, name, content)

	path, _ := ret.Get(0).(m.Path)

	return path, ret.Error(1)
}

// RelPath provides a mock function.
func (ms *MockSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	ret := ms.Called(base, target)

	rel, _ := ret.Get(0).(m.Path)

	return rel, ret.Error(1)
}
