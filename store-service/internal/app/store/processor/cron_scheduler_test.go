package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReportSource мок для ReportSource
type MockReportSource struct {
	mock.Mock
}

func (m *MockReportSource) Generate(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// ===================== NewCronScheduler Tests =====================

func TestNewCronScheduler(t *testing.T) {
	// Arrange
	source := new(MockReportSource)

	// Act
	scheduler := NewCronScheduler(source, []string{"sales"})

	// Assert
	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Empty(t, scheduler.GetEntries())
}

// ===================== Start / Stop Tests =====================

func TestCronScheduler_Start_RegistersEntry(t *testing.T) {
	source := new(MockReportSource)
	scheduler := NewCronScheduler(source, []string{"sales"})

	err := scheduler.Start(context.Background(), "*/5 * * * *")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
	scheduler.Stop()
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	source := new(MockReportSource)
	scheduler := NewCronScheduler(source, []string{"sales"})

	err := scheduler.Start(context.Background(), "not a schedule")

	assert.Error(t, err)
	assert.Empty(t, scheduler.GetEntries())
}

// ===================== RunOnce Tests =====================

func TestCronScheduler_RunOnce_ContinuesAfterError(t *testing.T) {
	// Arrange
	source := new(MockReportSource)
	ctx := context.Background()
	source.On("Generate", ctx, "sales").Return("", errors.New("cache exploded"))
	source.On("Generate", ctx, "inventory").Return("Inventory Report:\n", nil)

	scheduler := NewCronScheduler(source, []string{"sales", "inventory"})

	// Act
	generated := scheduler.RunOnce(ctx)

	// Assert
	assert.Equal(t, 1, generated)
	source.AssertExpectations(t)
}

func TestCronScheduler_RunOnce_NoReports(t *testing.T) {
	source := new(MockReportSource)
	scheduler := NewCronScheduler(source, nil)

	assert.Equal(t, 0, scheduler.RunOnce(context.Background()))
	source.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
