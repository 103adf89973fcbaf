package render

import (
	"fmt"
	"strings"

	"retailcore/store-service/internal/app/store/entity"
)

// InventoryView - таблица остатков для вывода оператору
func InventoryView(products []entity.Product) string {
	if len(products) == 0 {
		return "Inventory is empty.\n"
	}

	var b strings.Builder
	for _, p := range products {
		category := "None"
		if p.Category != nil && p.Category.Name != "" {
			category = p.Category.Name
		}
		fmt.Fprintf(&b, "Product ID: %d, Name: %s, Category: %s, Price: $%s, Quantity: %d\n",
			p.ID, p.Name, category, Money(p.Price), p.Quantity)
	}
	b.WriteString("--------------------------\n")
	return b.String()
}

// PlainTextHistory - история покупок одного покупателя
func PlainTextHistory(records []entity.PurchaseRecord) string {
	if len(records) == 0 {
		return "No purchase history found.\n"
	}

	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "  - Bought %d %s for $%s\n", r.Quantity, r.ProductName, Money(r.TotalCost))
	}
	return b.String()
}
