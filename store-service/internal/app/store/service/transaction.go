package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"retailcore/pkg/logger"
	"retailcore/pkg/metrics"
	"retailcore/store-service/internal/app/store/entity"
	"retailcore/store-service/internal/app/store/util"

	"github.com/google/uuid"
)

// TransactionProcessor проводит покупку одного товара одним покупателем
// Сначала все проверки, затем списание со склада и запись в историю
type TransactionProcessor struct {
	mu        sync.Mutex // транзакции выполняются строго по одной
	inventory Inventory
	ledger    PurchaseLedger
	publisher util.MessagePublisher // может быть nil - события не отправляются
	now       func() time.Time
}

// NewTransactionProcessor создает процессор с внедрением зависимостей
func NewTransactionProcessor(inventory Inventory, ledger PurchaseLedger, publisher util.MessagePublisher) *TransactionProcessor {
	return &TransactionProcessor{
		inventory: inventory,
		ledger:    ledger,
		publisher: publisher,
		now:       time.Now,
	}
}

// Process выполняет транзакцию
// 1. quantity > 0
// 2. товар и покупатель существуют
// 3. Checkout каталога: остаток, цена за единицу со скидкой и списание под одной блокировкой
// 4. итоговая сумма и запись в историю покупок
// После фиксации отправляет событие TRANSACTION_COMPLETED (ошибки Kafka не влияют на результат)
func (p *TransactionProcessor) Process(ctx context.Context, customerID, productID, quantity int) (*entity.TransactionResult, error) {
	start := p.now()

	result, err := p.commit(customerID, productID, quantity)
	if err != nil {
		metrics.RecordTransaction(transactionStatus(err), productID, quantity, 0, time.Since(start))
		logger.Warn().
			Err(err).
			Int("customer_id", customerID).
			Int("product_id", productID).
			Int("quantity", quantity).
			Msg("Transaction rejected")
		return nil, err
	}

	metrics.RecordTransaction("completed", productID, quantity, result.TotalCost, time.Since(start))
	logger.Info().
		Str("transaction_id", result.TransactionID.String()).
		Int("customer_id", customerID).
		Int("product_id", productID).
		Int("quantity", quantity).
		Float64("unit_price", result.UnitPrice).
		Float64("total_cost", result.TotalCost).
		Msg("Transaction completed")

	if err := p.publishCompleted(ctx, result); err != nil {
		// Покупка уже зафиксирована, проблемы с Kafka не критичны
		logger.Error().Err(err).Str("transaction_id", result.TransactionID.String()).
			Msg("Failed to publish transaction completed event")
	}

	return result, nil
}

// commit проверяет и фиксирует покупку
// Товар проверяется раньше покупателя, чтобы ErrNotFound для обоих случаев был предсказуем
func (p *TransactionProcessor) commit(customerID, productID, quantity int) (*entity.TransactionResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero, got %d", entity.ErrInvalidQuantity, quantity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.inventory.Get(productID); err != nil {
		return nil, err
	}

	customer, err := p.ledger.Get(customerID)
	if err != nil {
		return nil, err
	}

	// Остаток, цена со скидкой и списание - одна операция каталога.
	// Результат строится только из её снимка: параллельный PUT цены или скидки
	// попадает либо целиком до продажи, либо целиком после
	sold, unitPrice, err := p.inventory.Checkout(productID, quantity)
	if err != nil {
		return nil, err
	}
	totalCost := unitPrice * float64(quantity)

	// Покупатели не удаляются, поэтому после успешного Get запись в историю не падает
	if err := p.ledger.RecordPurchase(customerID, sold.Name, quantity, totalCost); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	metrics.SetStockLevel(sold.ID, sold.Quantity)

	return &entity.TransactionResult{
		TransactionID: uuid.New(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		ProductID:     sold.ID,
		ProductName:   sold.Name,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		OriginalPrice: sold.Price,
		TotalCost:     totalCost,
		CompletedAt:   p.now(),
	}, nil
}

// publishCompleted отправляет TRANSACTION_COMPLETED. Ключ - ID товара
func (p *TransactionProcessor) publishCompleted(ctx context.Context, result *entity.TransactionResult) error {
	if p.publisher == nil {
		return nil
	}

	event := entity.TransactionEvent{
		EventType:     entity.EventTransactionCompleted,
		TransactionID: result.TransactionID,
		CustomerID:    result.CustomerID,
		ProductID:     result.ProductID,
		Quantity:      result.Quantity,
		UnitPrice:     result.UnitPrice,
		TotalCost:     result.TotalCost,
		Timestamp:     result.CompletedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	if err := p.publisher.PublishMessage(ctx, strconv.Itoa(result.ProductID), data); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}

// transactionStatus - лейбл метрики для отклонённой транзакции
func transactionStatus(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, entity.ErrNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, entity.ErrInvalidDiscount):
		return "invalid_discount"
	}
	return "failed"
}
