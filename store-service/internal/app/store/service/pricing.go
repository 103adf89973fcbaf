package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"retailcore/pkg/logger"
	"retailcore/store-service/internal/app/store/entity"
	"retailcore/store-service/internal/app/store/util"
)

// PricingService меняет цены товаров и уведомляет об этом другие сервисы
type PricingService struct {
	catalog   *ProductCatalog
	publisher util.MessagePublisher // может быть nil
}

// NewPricingService создает сервис цен. publisher может быть nil
func NewPricingService(catalog *ProductCatalog, publisher util.MessagePublisher) *PricingService {
	return &PricingService{catalog: catalog, publisher: publisher}
}

// UpdatePrice обновляет цену и отправляет PRICE_UPDATED, если цена действительно изменилась
func (s *PricingService) UpdatePrice(ctx context.Context, id int, price float64) (entity.Product, error) {
	oldPrice, err := s.catalog.UpdatePrice(id, price)
	if err != nil {
		return entity.Product{}, err
	}

	product, err := s.catalog.Get(id)
	if err != nil {
		return entity.Product{}, err
	}

	if oldPrice != price && s.publisher != nil {
		event := entity.ProductEvent{
			EventType: entity.EventPriceUpdated,
			ProductID: product.ID,
			Name:      product.Name,
			OldPrice:  oldPrice,
			Price:     price,
			Timestamp: time.Now(),
		}
		if err := s.publish(ctx, event); err != nil {
			// Цена уже изменена, ошибка Kafka не критична
			logger.Error().Err(err).Int("product_id", id).Msg("Failed to publish price updated event")
		}
	}

	return product, nil
}

func (s *PricingService) publish(ctx context.Context, event entity.ProductEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}
	if err := s.publisher.PublishMessage(ctx, strconv.Itoa(event.ProductID), data); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}
