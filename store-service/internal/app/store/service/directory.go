package service

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"retailcore/store-service/internal/app/store/entity"
)

// CustomerDirectory владеет покупателями и их историями покупок
type CustomerDirectory struct {
	mu        sync.RWMutex
	customers map[int]*entity.Customer
	histories map[int]*entity.PurchaseHistory
	version   uint64
}

// NewCustomerDirectory создает пустой справочник покупателей
func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{
		customers: make(map[int]*entity.Customer),
		histories: make(map[int]*entity.PurchaseHistory),
	}
}

// Add регистрирует покупателя и сразу заводит ему пустую историю
func (d *CustomerDirectory) Add(customer *entity.Customer) error {
	if customer == nil {
		return errors.New("customer is nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.customers[customer.ID]; exists {
		return fmt.Errorf("%w: customer with id %d already exists", entity.ErrDuplicateKey, customer.ID)
	}

	owned := *customer
	d.customers[owned.ID] = &owned
	d.histories[owned.ID] = &entity.PurchaseHistory{}
	d.version++
	return nil
}

// Get возвращает копию покупателя по ID
func (d *CustomerDirectory) Get(id int) (entity.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	customer, ok := d.customers[id]
	if !ok {
		return entity.Customer{}, customerNotFound(id)
	}
	return *customer, nil
}

// UpdateContact меняет имя и/или email покупателя. Пустые значения не трогают поле
func (d *CustomerDirectory) UpdateContact(id int, name, email string) (entity.Customer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	customer, ok := d.customers[id]
	if !ok {
		return entity.Customer{}, customerNotFound(id)
	}

	if name != "" {
		customer.SetName(name)
	}
	if email != "" {
		customer.SetEmail(email)
	}
	d.version++
	return *customer, nil
}

// RecordPurchase добавляет запись в историю покупателя
func (d *CustomerDirectory) RecordPurchase(customerID int, productName string, quantity int, totalCost float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.customers[customerID]; !ok {
		return fmt.Errorf("cannot add purchase: %w", customerNotFound(customerID))
	}

	history, ok := d.histories[customerID]
	if !ok {
		history = &entity.PurchaseHistory{}
		d.histories[customerID] = history
	}
	history.Add(productName, quantity, totalCost)
	d.version++
	return nil
}

// HistoryOf возвращает историю покупок в хронологическом порядке
// Для известного покупателя без покупок - пустой срез, ErrNotFound только для неизвестного ID
func (d *CustomerDirectory) HistoryOf(customerID int) ([]entity.PurchaseRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.customers[customerID]; !ok {
		return nil, customerNotFound(customerID)
	}

	history, ok := d.histories[customerID]
	if !ok {
		return []entity.PurchaseRecord{}, nil
	}
	return history.Records(), nil
}

// ListAll возвращает всех покупателей по возрастанию ID
func (d *CustomerDirectory) ListAll() []entity.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]entity.Customer, 0, len(d.customers))
	for _, customer := range d.customers {
		out = append(out, *customer)
	}
	slices.SortFunc(out, func(a, b entity.Customer) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Version возвращает счётчик изменений справочника, входит в ключ кеша отчётов
func (d *CustomerDirectory) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

func customerNotFound(id int) error {
	return fmt.Errorf("%w: customer %d", entity.ErrNotFound, id)
}
