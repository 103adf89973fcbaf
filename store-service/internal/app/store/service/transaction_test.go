package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"retailcore/store-service/internal/app/store/entity"
	"retailcore/store-service/internal/app/store/util/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupStore - каталог и покупатели из стартового сценария магазина
func setupStore(t *testing.T) (*ProductCatalog, *CustomerDirectory) {
	t.Helper()

	catalog := newTestCatalog(t)
	require.NoError(t, catalog.SetDiscount(101, entity.PercentageDiscount(10)))
	require.NoError(t, catalog.SetDiscount(102, entity.FlatDiscount(5)))

	return catalog, newTestDirectory(t)
}

// repricingInventory меняет цену товара сразу после проверки существования,
// то есть между Get и Checkout процессора
type repricingInventory struct {
	*ProductCatalog
	newPrice float64
}

func (r *repricingInventory) Get(id int) (entity.Product, error) {
	product, err := r.ProductCatalog.Get(id)
	if err != nil {
		return product, err
	}
	_, err = r.ProductCatalog.UpdatePrice(id, r.newPrice)
	return product, err
}

// ===================== Process Tests =====================

func TestTransactionProcessor_Process_Success(t *testing.T) {
	// Arrange
	catalog, directory := setupStore(t)
	processor := NewTransactionProcessor(catalog, directory, nil)
	ctx := context.Background()

	// Act
	laptop, err := processor.Process(ctx, 1, 101, 2)
	require.NoError(t, err)
	mouse, err := processor.Process(ctx, 2, 102, 3)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Alice Johnson", laptop.CustomerName)
	assert.Equal(t, "Laptop", laptop.ProductName)
	assert.InDelta(t, 1350.0, laptop.UnitPrice, 1e-9)
	assert.Equal(t, 1500.0, laptop.OriginalPrice)
	assert.InDelta(t, 2700.0, laptop.TotalCost, 1e-9)
	assert.InDelta(t, 60.0, mouse.TotalCost, 1e-9)
	assert.NotEqual(t, laptop.TransactionID, mouse.TransactionID)

	stored, _ := catalog.Get(101)
	assert.Equal(t, 8, stored.Quantity)
	stored, _ = catalog.Get(102)
	assert.Equal(t, 47, stored.Quantity)

	alice, err := directory.HistoryOf(1)
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, "Laptop", alice[0].ProductName)
	assert.Equal(t, 2, alice[0].Quantity)
	assert.InDelta(t, 2700.0, alice[0].TotalCost, 1e-9)

	bob, err := directory.HistoryOf(2)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.InDelta(t, 60.0, bob[0].TotalCost, 1e-9)
}

func TestTransactionProcessor_Process_ExactStock(t *testing.T) {
	catalog, directory := setupStore(t)
	processor := NewTransactionProcessor(catalog, directory, nil)

	_, err := processor.Process(context.Background(), 1, 101, 10)

	require.NoError(t, err)
	stored, _ := catalog.Get(101)
	assert.Equal(t, 0, stored.Quantity)
}

func TestTransactionProcessor_Process_Rejected(t *testing.T) {
	testCases := []struct {
		name       string
		customerID int
		productID  int
		quantity   int
		expected   error
	}{
		{"zero quantity", 1, 101, 0, entity.ErrInvalidQuantity},
		{"negative quantity", 1, 101, -1, entity.ErrInvalidQuantity},
		{"unknown product", 1, 999, 1, entity.ErrNotFound},
		{"unknown customer", 42, 101, 1, entity.ErrNotFound},
		{"insufficient stock", 1, 101, 11, entity.ErrInsufficientStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			catalog, directory := setupStore(t)
			publisher := new(mocks.MockMessagePublisher)
			processor := NewTransactionProcessor(catalog, directory, publisher)

			// Act
			result, err := processor.Process(context.Background(), tc.customerID, tc.productID, tc.quantity)

			// Assert
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tc.expected)

			stored, _ := catalog.Get(101)
			assert.Equal(t, 10, stored.Quantity)
			history, _ := directory.HistoryOf(1)
			assert.Empty(t, history)
			publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionProcessor_Process_ProductCheckedBeforeCustomer(t *testing.T) {
	catalog, directory := setupStore(t)
	processor := NewTransactionProcessor(catalog, directory, nil)

	_, err := processor.Process(context.Background(), 42, 999, 1)

	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "product 999")
}

func TestTransactionProcessor_Process_PublishesEvent(t *testing.T) {
	// Arrange
	catalog, directory := setupStore(t)
	publisher := new(mocks.MockMessagePublisher)
	processor := NewTransactionProcessor(catalog, directory, publisher)
	ctx := context.Background()

	publisher.On("PublishMessage", ctx, "101", mock.MatchedBy(func(data []byte) bool {
		var event entity.TransactionEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return false
		}
		return event.EventType == entity.EventTransactionCompleted &&
			event.CustomerID == 1 && event.Quantity == 2 && math.Abs(event.TotalCost-2700) < 1e-9
	})).Return(nil)

	// Act
	result, err := processor.Process(ctx, 1, 101, 2)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, result)
	publisher.AssertExpectations(t)
}

func TestTransactionProcessor_Process_PublishErrorIgnored(t *testing.T) {
	// Arrange
	catalog, directory := setupStore(t)
	publisher := new(mocks.MockMessagePublisher)
	processor := NewTransactionProcessor(catalog, directory, publisher)

	publisher.On("PublishMessage", mock.Anything, "102", mock.Anything).Return(errors.New("broker down"))

	// Act
	result, err := processor.Process(context.Background(), 2, 102, 3)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 60.0, result.TotalCost, 1e-9)
	stored, _ := catalog.Get(102)
	assert.Equal(t, 47, stored.Quantity)
	publisher.AssertExpectations(t)
}

func TestTransactionProcessor_Process_ConcurrentNeverOversells(t *testing.T) {
	// Arrange
	catalog, directory := setupStore(t)
	processor := NewTransactionProcessor(catalog, directory, nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	// Act: 20 покупок по 1 ноутбуку при остатке 10
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := processor.Process(context.Background(), 1, 101, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, entity.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, 10, succeeded)
	stored, _ := catalog.Get(101)
	assert.Equal(t, 0, stored.Quantity)
	history, _ := directory.HistoryOf(1)
	assert.Len(t, history, 10)
}

func TestTransactionProcessor_Process_PriceChangeBeforeCheckout(t *testing.T) {
	// Arrange
	catalog, directory := setupStore(t)
	inventory := &repricingInventory{ProductCatalog: catalog, newPrice: 2000}
	processor := NewTransactionProcessor(inventory, directory, nil)

	// Act
	result, err := processor.Process(context.Background(), 1, 101, 2)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2000.0, result.OriginalPrice)
	assert.InDelta(t, 1800.0, result.UnitPrice, 1e-9)
	assert.InDelta(t, 3600.0, result.TotalCost, 1e-9)

	history, err := directory.HistoryOf(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, result.TotalCost, history[0].TotalCost, 1e-9)
}

func TestTransactionProcessor_Process_ConcurrentRepricingConsistent(t *testing.T) {
	// Arrange
	catalog, directory := setupStore(t)
	require.NoError(t, catalog.UpdateQuantity(101, 1000))
	processor := NewTransactionProcessor(catalog, directory, nil)
	pricing := NewPricingService(catalog, nil)
	ctx := context.Background()

	stop := make(chan struct{})
	var repricer sync.WaitGroup
	repricer.Add(1)
	go func() {
		defer repricer.Done()
		prices := []float64{1500, 2000, 900}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				_, _ = pricing.UpdatePrice(ctx, 101, prices[i%len(prices)])
			}
		}
	}()

	// Act
	var wg sync.WaitGroup
	results := make(chan *entity.TransactionResult, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := processor.Process(ctx, 1, 101, 1)
			if err == nil {
				results <- result
			}
		}()
	}
	wg.Wait()
	close(stop)
	repricer.Wait()
	close(results)

	// Assert
	count := 0
	for result := range results {
		count++
		assert.InDelta(t, result.OriginalPrice*0.9, result.UnitPrice, 1e-9)
		assert.InDelta(t, result.UnitPrice, result.TotalCost, 1e-9)
	}
	assert.Equal(t, 50, count)
}

func TestTransactionStatus(t *testing.T) {
	assert.Equal(t, "invalid_quantity", transactionStatus(entity.ErrInvalidQuantity))
	assert.Equal(t, "not_found", transactionStatus(productNotFound(1)))
	assert.Equal(t, "insufficient_stock", transactionStatus(entity.ErrInsufficientStock))
	assert.Equal(t, "invalid_discount", transactionStatus(entity.ErrInvalidDiscount))
	assert.Equal(t, "failed", transactionStatus(errors.New("boom")))
}
