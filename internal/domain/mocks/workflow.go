// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"counterpart.dev/pkg/counterpart/internal/domain"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted on cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mw := &MockWorkflow{}
	mw.Mock.Test(t)

	t.Cleanup(func() { mw.AssertExpectations(t) })

	return mw
}

// Jump provides a mock function.
func (mw *MockWorkflow) Jump(ctx context.Context, args domain.JumpArgs) (m.Outcome, error) {
	ret := mw.Called(ctx, args)

	outcome, _ := ret.Get(0).(m.Outcome)

	return outcome, ret.Error(1)
}

// Resolve provides a mock function.
func (mw *MockWorkflow) Resolve(ctx context.Context, args domain.ResolveArgs) error {
	return mw.Called(ctx, args).Error(0)
}

// List provides a mock function.
func (mw *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	return mw.Called(ctx, args).Error(0)
}
