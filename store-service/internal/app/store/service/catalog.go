package service

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"retailcore/store-service/internal/app/store/entity"
)

var errNilProduct = errors.New("product is nil")

// ProductCatalog владеет всеми товарами и назначенными им скидками
// Наружу отдаются только копии товаров, изменения идут через методы каталога
type ProductCatalog struct {
	mu         sync.RWMutex
	products   map[int]*entity.Product
	discounts  map[int]entity.Discount  // отсутствие записи == NoDiscount
	categories map[int]*entity.Category // справочник категорий, на которые ссылаются товары
	version    uint64                   // растёт при каждом изменении, используется в ключах кеша отчётов
}

// NewProductCatalog создает пустой каталог
func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{
		products:   make(map[int]*entity.Product),
		discounts:  make(map[int]entity.Discount),
		categories: make(map[int]*entity.Category),
	}
}

// Add добавляет товар в каталог. Каталог хранит собственную копию товара
// Категория товара сопоставляется со справочником: новая регистрируется,
// известная подменяется зарегистрированной, расхождение имени отклоняется
func (c *ProductCatalog) Add(product *entity.Product) error {
	if product == nil {
		return errNilProduct
	}
	if !entity.ValidPrice(product.Price) || product.Quantity < 0 {
		return fmt.Errorf("%w: product %d has invalid price %v or quantity %d",
			entity.ErrInvalidQuantity, product.ID, product.Price, product.Quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.products[product.ID]; exists {
		return fmt.Errorf("%w: product with id %d already exists", entity.ErrDuplicateKey, product.ID)
	}

	owned := *product
	if owned.Category != nil {
		category, err := c.resolveCategory(owned.Category)
		if err != nil {
			return err
		}
		owned.Category = category
	}

	c.products[owned.ID] = &owned
	c.version++
	return nil
}

// Get возвращает копию товара по ID
func (c *ProductCatalog) Get(id int) (entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.products[id]
	if !ok {
		return entity.Product{}, productNotFound(id)
	}
	return *product, nil
}

// ListAll возвращает все товары, упорядоченные по ID
func (c *ProductCatalog) ListAll() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.collect(func(*entity.Product) bool { return true })
}

// ByCategory возвращает товары указанной категории. Товары без категории не попадают в выборку
func (c *ProductCatalog) ByCategory(categoryID int) []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.collect(func(p *entity.Product) bool {
		id, ok := p.CategoryID()
		return ok && id == categoryID
	})
}

// SetDiscount назначает скидку товару, заменяя предыдущую
func (c *ProductCatalog) SetDiscount(id int, discount entity.Discount) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.products[id]; !ok {
		return fmt.Errorf("cannot apply discount: %w", productNotFound(id))
	}
	if err := discount.Validate(); err != nil {
		return fmt.Errorf("cannot apply discount to product %d: %w", id, err)
	}

	c.discounts[id] = discount
	c.version++
	return nil
}

// Discount возвращает назначенную товару скидку или NoDiscount
func (c *ProductCatalog) Discount(id int) (entity.Discount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.products[id]; !ok {
		return entity.Discount{}, productNotFound(id)
	}
	return c.discountFor(id), nil
}

// DiscountedPrice возвращает цену товара с учетом скидки
func (c *ProductCatalog) DiscountedPrice(id int) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.products[id]
	if !ok {
		return 0, productNotFound(id)
	}

	price, err := c.discountFor(id).Apply(product.Price)
	if err != nil {
		return 0, fmt.Errorf("failed to apply discount to product %d: %w", id, err)
	}
	return price, nil
}

// Quote возвращает согласованный снимок: товар, его скидку и цену со скидкой
func (c *ProductCatalog) Quote(id int) (entity.Product, entity.Discount, float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.products[id]
	if !ok {
		return entity.Product{}, entity.Discount{}, 0, productNotFound(id)
	}

	discount := c.discountFor(id)
	price, err := discount.Apply(product.Price)
	if err != nil {
		return entity.Product{}, entity.Discount{}, 0, fmt.Errorf("failed to apply discount to product %d: %w", id, err)
	}
	return *product, discount, price, nil
}

// UpdatePrice меняет цену товара и возвращает предыдущую
func (c *ProductCatalog) UpdatePrice(id int, price float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[id]
	if !ok {
		return 0, productNotFound(id)
	}

	oldPrice := product.Price
	if err := product.UpdatePrice(price); err != nil {
		return 0, err
	}
	c.version++
	return oldPrice, nil
}

// UpdateQuantity выставляет остаток товара (инвентаризация, поставка)
func (c *ProductCatalog) UpdateQuantity(id int, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[id]
	if !ok {
		return productNotFound(id)
	}

	if err := product.UpdateQuantity(quantity); err != nil {
		return err
	}
	c.version++
	return nil
}

// Checkout проводит продажу со стороны склада: проверка остатка, цена со скидкой и списание
// выполняются под одной блокировкой, поэтому смена цены или скидки не может вклиниться между ними.
// Возвращает товар после списания (цена - та, по которой считалась скидка) и цену за единицу.
// При ошибке состояние не меняется
func (c *ProductCatalog) Checkout(id int, quantity int) (entity.Product, float64, error) {
	if quantity <= 0 {
		return entity.Product{}, 0, fmt.Errorf("%w: quantity must be greater than zero, got %d",
			entity.ErrInvalidQuantity, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[id]
	if !ok {
		return entity.Product{}, 0, productNotFound(id)
	}
	if quantity > product.Quantity {
		return entity.Product{}, 0, fmt.Errorf("%w: requested %d, available %d for product %d",
			entity.ErrInsufficientStock, quantity, product.Quantity, id)
	}

	unitPrice, err := c.discountFor(id).Apply(product.Price)
	if err != nil {
		return entity.Product{}, 0, fmt.Errorf("failed to apply discount to product %d: %w", id, err)
	}

	if err := product.UpdateQuantity(product.Quantity - quantity); err != nil {
		return entity.Product{}, 0, err
	}
	c.version++
	return *product, unitPrice, nil
}

// AddCategory регистрирует категорию в справочнике каталога
func (c *ProductCatalog) AddCategory(category *entity.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.categories[category.ID]; exists {
		return fmt.Errorf("%w: category with id %d already exists", entity.ErrDuplicateKey, category.ID)
	}
	owned := *category
	c.categories[owned.ID] = &owned
	c.version++
	return nil
}

// Category ищет категорию по ID
func (c *ProductCatalog) Category(id int) (*entity.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	category, ok := c.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %d", entity.ErrNotFound, id)
	}
	// Копия: справочник категорий меняется только через каталог
	found := *category
	return &found, nil
}

// Categories возвращает все известные категории по возрастанию ID
func (c *ProductCatalog) Categories() []entity.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Category, 0, len(c.categories))
	for _, category := range c.categories {
		out = append(out, *category)
	}
	slices.SortFunc(out, func(a, b entity.Category) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Version возвращает счётчик изменений каталога
func (c *ProductCatalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// resolveCategory вызывается под блокировкой на запись
// Возвращает ссылку на категорию из справочника, регистрируя новую при необходимости
func (c *ProductCatalog) resolveCategory(category *entity.Category) (*entity.Category, error) {
	registered, known := c.categories[category.ID]
	if !known {
		owned := *category
		c.categories[owned.ID] = &owned
		return &owned, nil
	}
	if registered.Name != category.Name {
		return nil, fmt.Errorf("%w: category %d is registered as %q, got %q",
			entity.ErrDuplicateKey, category.ID, registered.Name, category.Name)
	}
	return registered, nil
}

// discountFor вызывается под блокировкой
func (c *ProductCatalog) discountFor(id int) entity.Discount {
	if discount, ok := c.discounts[id]; ok {
		return discount
	}
	return entity.NoDiscount()
}

// collect вызывается под блокировкой
func (c *ProductCatalog) collect(keep func(*entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0, len(c.products))
	for _, product := range c.products {
		if keep(product) {
			out = append(out, *product)
		}
	}
	slices.SortFunc(out, func(a, b entity.Product) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func productNotFound(id int) error {
	return fmt.Errorf("%w: product %d", entity.ErrNotFound, id)
}
