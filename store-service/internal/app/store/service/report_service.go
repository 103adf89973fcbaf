package service

import (
	"context"
	"fmt"
	"time"

	"retailcore/pkg/logger"
	"retailcore/pkg/metrics"
	"retailcore/store-service/internal/app/store/render"
	"retailcore/store-service/internal/app/store/util"
)

// ReportService генерирует отчёты и кеширует их в Redis
// Ключ кеша содержит версии каталога и справочника покупателей,
// поэтому после любой транзакции старый отчёт просто перестает запрашиваться
type ReportService struct {
	catalog   CatalogReader
	directory DirectoryReader
	generator *render.ReportGenerator
	cache     util.ReportCache // nil - без кеша
	ttl       time.Duration
}

// NewReportService создает сервис отчётов с внедрением зависимостей
func NewReportService(catalog CatalogReader, directory DirectoryReader, cache util.ReportCache, ttl time.Duration) *ReportService {
	return &ReportService{
		catalog:   catalog,
		directory: directory,
		generator: render.NewReportGenerator(
			render.NewSalesReport(directory),
			render.NewInventoryReport(catalog),
		),
		cache: cache,
		ttl:   ttl,
	}
}

// Generate возвращает отчёт по имени (sales, inventory)
func (s *ReportService) Generate(ctx context.Context, name string) (string, error) {
	if !s.generator.Has(name) {
		return "", fmt.Errorf("%w: %q", render.ErrUnknownReport, name)
	}

	key := s.cacheKey(name)

	if s.cache != nil {
		report, found, err := s.cache.GetReport(ctx, key)
		if err != nil {
			// Кеш недоступен - генерируем отчёт заново
			logger.Warn().Err(err).Str("key", key).Msg("Failed to read report cache")
		} else if found {
			metrics.RecordReport(name, "cache")
			return report, nil
		}
	}

	report, err := s.generator.Generate(name)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", name, err)
	}
	metrics.RecordReport(name, "render")

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, key, report, s.ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to cache report")
		}
	}

	return report, nil
}

// cacheKey включает версии каталога и справочника: изменение данных дает новый ключ
func (s *ReportService) cacheKey(name string) string {
	return fmt.Sprintf("reports:%s:%d:%d", name, s.catalog.Version(), s.directory.Version())
}
