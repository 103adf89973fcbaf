package processor

import (
	"context"

	"retailcore/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ReportSource - источник отчётов (service.ReportService)
type ReportSource interface {
	Generate(ctx context.Context, name string) (string, error)
}

// CronScheduler периодически генерирует отчёты и пишет их в лог
type CronScheduler struct {
	cron    *cron.Cron
	reports ReportSource
	names   []string
}

// NewCronScheduler создает планировщик прогрева отчётов names
func NewCronScheduler(reports ReportSource, names []string) *CronScheduler {
	l := logger.Get()
	c := cron.New(cron.WithLogger(cron.PrintfLogger(&l)))

	return &CronScheduler{
		cron:    c,
		reports: reports,
		names:   names,
	}
}

// Start регистрирует задачу по расписанию schedule (стандартный cron формат) и запускает планировщик
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Strs("reports", s.names).Msg("Starting report scheduler")

	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// RunOnce генерирует все настроенные отчёты. Ошибка одного отчёта не мешает остальным
func (s *CronScheduler) RunOnce(ctx context.Context) int {
	generated := 0
	for _, name := range s.names {
		report, err := s.reports.Generate(ctx, name)
		if err != nil {
			logger.Error().Err(err).Str("report", name).Msg("Scheduled report failed")
			continue
		}
		generated++
		logger.Info().Str("report", name).Str("content", report).Msg("Scheduled report generated")
	}
	return generated
}

// Stop останавливает планировщик и ждет завершения текущей задачи
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping report scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Report scheduler stopped")
}

// GetEntries возвращает зарегистрированные задачи (для тестов и отладки)
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
