package service

import "retailcore/store-service/internal/app/store/entity"

// Inventory - то, что процессору нужно от каталога
// Checkout обязан проверять остаток, считать цену и списывать товар атомарно
type Inventory interface {
	Get(id int) (entity.Product, error)
	Checkout(id int, quantity int) (entity.Product, float64, error)
}

// PurchaseLedger - то, что процессору нужно от справочника покупателей
type PurchaseLedger interface {
	Get(id int) (entity.Customer, error)
	RecordPurchase(customerID int, productName string, quantity int, totalCost float64) error
}

// CatalogReader - доступ к каталогу только на чтение (отчёты)
type CatalogReader interface {
	ListAll() []entity.Product
	Version() uint64
}

// DirectoryReader - доступ к покупателям только на чтение (отчёты)
type DirectoryReader interface {
	ListAll() []entity.Customer
	HistoryOf(customerID int) ([]entity.PurchaseRecord, error)
	Version() uint64
}

var (
	_ Inventory       = (*ProductCatalog)(nil)
	_ CatalogReader   = (*ProductCatalog)(nil)
	_ PurchaseLedger  = (*CustomerDirectory)(nil)
	_ DirectoryReader = (*CustomerDirectory)(nil)
)
