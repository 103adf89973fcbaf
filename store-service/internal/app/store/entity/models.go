package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию товаров
// Неизменяема после создания, товары держат на неё невладеющую ссылку
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewCategory создает категорию
func NewCategory(id int, name string) *Category {
	return &Category{ID: id, Name: name}
}

// Product представляет товар на складе
type Product struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Category *Category `json:"category,omitempty"` // nil - товар без категории
}

// NewProduct создает товар. Проверка цены и остатка - на стороне каталога
func NewProduct(id int, name string, price float64, quantity int, category *Category) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Category: category,
	}
}

// ValidPrice - цена конечна и не отрицательна. NaN и ±Inf не проходят проверку
func ValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price >= 0
}

// UpdatePrice меняет цену. Отрицательная или нечисловая цена отклоняется без изменения состояния
func (p *Product) UpdatePrice(newPrice float64) error {
	if !ValidPrice(newPrice) {
		return fmt.Errorf("%w: price %.2f for product %d", ErrInvalidQuantity, newPrice, p.ID)
	}
	p.Price = newPrice
	return nil
}

// UpdateQuantity меняет остаток. Отрицательный остаток отклоняется без изменения состояния
func (p *Product) UpdateQuantity(newQuantity int) error {
	if newQuantity < 0 {
		return fmt.Errorf("%w: quantity %d for product %d", ErrInvalidQuantity, newQuantity, p.ID)
	}
	p.Quantity = newQuantity
	return nil
}

// SetCategory меняет категорию товара, nil - без категории
func (p *Product) SetCategory(category *Category) {
	p.Category = category
}

// CategoryID возвращает ID категории и false для товара без категории
func (p *Product) CategoryID() (int, bool) {
	if p.Category == nil {
		return 0, false
	}
	return p.Category.ID, true
}

// Customer - покупатель. ID фиксирован, имя и email можно менять
type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCustomer создает покупателя с пустой историей
func NewCustomer(id int, name, email string) *Customer {
	return &Customer{ID: id, Name: name, Email: email}
}

// SetName меняет имя покупателя
func (c *Customer) SetName(name string) {
	c.Name = name
}

// SetEmail меняет email покупателя
func (c *Customer) SetEmail(email string) {
	c.Email = email
}

// PurchaseRecord - запись о завершённой покупке
type PurchaseRecord struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	TotalCost   float64 `json:"total_cost"`
}

// PurchaseHistory - журнал покупок клиента в хронологическом порядке (только добавление)
type PurchaseHistory struct {
	records []PurchaseRecord
}

// Add дописывает покупку в конец журнала
func (h *PurchaseHistory) Add(productName string, quantity int, totalCost float64) {
	h.records = append(h.records, PurchaseRecord{
		ProductName: productName,
		Quantity:    quantity,
		TotalCost:   totalCost,
	})
}

// Records возвращает копию журнала, вызывающий код не может изменить историю
func (h *PurchaseHistory) Records() []PurchaseRecord {
	out := make([]PurchaseRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len - число покупок
func (h *PurchaseHistory) Len() int {
	return len(h.records)
}

// TransactionResult - результат завершённой транзакции для чеков и отчётов
type TransactionResult struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	CustomerID    int       `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	ProductID     int       `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`     // Цена за единицу после скидки
	OriginalPrice float64   `json:"original_price"` // Цена за единицу до скидки
	TotalCost     float64   `json:"total_cost"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Типы событий для Kafka
const (
	EventTransactionCompleted = "TRANSACTION_COMPLETED"
	EventPriceUpdated         = "PRICE_UPDATED"
)

// TransactionEvent - событие о завершённой транзакции
type TransactionEvent struct {
	EventType     string    `json:"event_type"`
	TransactionID uuid.UUID `json:"transaction_id"`
	CustomerID    int       `json:"customer_id"`
	ProductID     int       `json:"product_id"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TotalCost     float64   `json:"total_cost"`
	Timestamp     time.Time `json:"timestamp"`
}

// ProductEvent - событие изменения цены товара
type ProductEvent struct {
	EventType string    `json:"event_type"`
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	OldPrice  float64   `json:"old_price"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}
