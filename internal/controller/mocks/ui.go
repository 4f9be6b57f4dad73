// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"counterpart.dev/pkg/counterpart/internal/controller"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI whose expectations are asserted on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mu := &MockUI{}
	mu.Mock.Test(t)

	t.Cleanup(func() { mu.AssertExpectations(t) })

	return mu
}

// Confirm provides a mock function.
func (mu *MockUI) Confirm(ctx context.Context, message, affirmative string) (bool, error) {
	ret := mu.Called(ctx, message, affirmative)
	return ret.Bool(0), ret.Error(1)
}

// DisplayError provides a mock function.
func (mu *MockUI) DisplayError(ctx context.Context, err error) {
	mu.Called(ctx, err)
}

// DisplayPreview provides a mock function.
func (mu *MockUI) DisplayPreview(ctx context.Context, path m.Path, diff string) error {
	return mu.Called(ctx, path, diff).Error(0)
}

// DisplayResolution provides a mock function.
func (mu *MockUI) DisplayResolution(ctx context.Context, resolution controller.Resolution, format controller.OutputFormat) error {
	return mu.Called(ctx, resolution, format).Error(0)
}

// DisplayPairs provides a mock function.
func (mu *MockUI) DisplayPairs(ctx context.Context, pairs []m.Pair) error {
	return mu.Called(ctx, pairs).Error(0)
}
