package render

import (
	"errors"
	"fmt"
	"strings"

	"retailcore/store-service/internal/app/store/entity"
)

// Имена отчётов
const (
	ReportSales     = "sales"
	ReportInventory = "inventory"
)

// ErrUnknownReport - запрошен отчёт, которого нет в генераторе
var ErrUnknownReport = errors.New("unknown report")

// Report - текстовый отчёт по текущему состоянию магазина
type Report interface {
	Name() string
	Generate() (string, error)
}

// CustomerSource - покупатели и их истории (только чтение)
type CustomerSource interface {
	ListAll() []entity.Customer
	HistoryOf(customerID int) ([]entity.PurchaseRecord, error)
}

// ProductSource - товары (только чтение)
type ProductSource interface {
	ListAll() []entity.Product
}

// SalesReport перечисляет покупки всех покупателей
type SalesReport struct {
	customers CustomerSource
}

// NewSalesReport создает отчёт о продажах по покупателям
func NewSalesReport(customers CustomerSource) *SalesReport {
	return &SalesReport{customers: customers}
}

// Name - ключ отчёта в генераторе и в кеше
func (r *SalesReport) Name() string { return ReportSales }

// Generate не прерывается на ошибке одного покупателя:
// ErrNotFound трактуется как отсутствие покупок, прочие ошибки пишутся в строку отчёта
func (r *SalesReport) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("Sales Report:\n")

	for _, customer := range r.customers.ListAll() {
		fmt.Fprintf(&b, "Customer: %s (ID: %d)\n", customer.Name, customer.ID)

		purchases, err := r.customers.HistoryOf(customer.ID)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			fmt.Fprintf(&b, "  Error retrieving purchase history: %v\n", err)
			continue
		}
		if len(purchases) == 0 {
			b.WriteString("  No purchases found.\n")
			continue
		}
		for _, p := range purchases {
			fmt.Fprintf(&b, "  - Bought %d %s for $%s\n", p.Quantity, p.ProductName, Money(p.TotalCost))
		}
	}
	return b.String(), nil
}

// InventoryReport перечисляет остатки товаров
type InventoryReport struct {
	products ProductSource
}

// NewInventoryReport создает отчёт об остатках
func NewInventoryReport(products ProductSource) *InventoryReport {
	return &InventoryReport{products: products}
}

// Name - ключ отчёта в генераторе и в кеше
func (r *InventoryReport) Name() string { return ReportInventory }

// Generate строит таблицу остатков по текущему снимку каталога
func (r *InventoryReport) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("Inventory Report:\n")

	products := r.products.ListAll()
	if len(products) == 0 {
		b.WriteString("No products in inventory.\n")
		return b.String(), nil
	}
	for _, p := range products {
		fmt.Fprintf(&b, "- Product: %s, Price: $%s, Quantity: %d\n", p.Name, Money(p.Price), p.Quantity)
	}
	return b.String(), nil
}

// ReportGenerator хранит доступные отчёты по имени
type ReportGenerator struct {
	reports map[string]Report
}

// NewReportGenerator регистрирует отчёты по их именам
func NewReportGenerator(reports ...Report) *ReportGenerator {
	g := &ReportGenerator{reports: make(map[string]Report, len(reports))}
	for _, r := range reports {
		g.reports[r.Name()] = r
	}
	return g
}

// Generate строит отчёт по имени или возвращает ErrUnknownReport
func (g *ReportGenerator) Generate(name string) (string, error) {
	report, ok := g.reports[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}
	return report.Generate()
}

// Has сообщает, зарегистрирован ли отчёт
func (g *ReportGenerator) Has(name string) bool {
	_, ok := g.reports[name]
	return ok
}
