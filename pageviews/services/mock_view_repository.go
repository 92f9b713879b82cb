// Copyright (c) 2025 solstack.dev
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockViewRepository is a mock implementation of ViewRepository for testing
type MockViewRepository struct {
	mock.Mock
}

// IncrementView mocks the IncrementView method
func (m *MockViewRepository) IncrementView(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

// GetViewCount mocks the GetViewCount method
func (m *MockViewRepository) GetViewCount(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

// GetViewCounts mocks the GetViewCounts method
func (m *MockViewRepository) GetViewCounts(ctx context.Context, slugs []string) (map[string]int64, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockViewRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method
func (m *MockViewRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
