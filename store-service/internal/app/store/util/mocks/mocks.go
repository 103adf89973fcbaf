package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockReportCache мок для util.ReportCache
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetReport(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockReportCache) SetReport(ctx context.Context, key string, report string, ttl time.Duration) error {
	args := m.Called(ctx, key, report, ttl)
	return args.Error(0)
}

func (m *MockReportCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для util.MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
