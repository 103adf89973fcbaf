package bootstrap

import (
	"fmt"

	"retailcore/store-service/internal/app/store/entity"
	"retailcore/store-service/internal/app/store/service"
)

// Идентификаторы демонстрационных данных
const (
	CategoryElectronics = 1
	CategoryAccessories = 2

	ProductLaptop = 101
	ProductMouse  = 102

	CustomerAlice = 1
	CustomerBob   = 2
)

// Seed заполняет каталог и справочник покупателей демонстрационными данными
func Seed(catalog *service.ProductCatalog, directory *service.CustomerDirectory) error {
	electronics := entity.NewCategory(CategoryElectronics, "Electronics")
	accessories := entity.NewCategory(CategoryAccessories, "Accessories")
	for _, category := range []*entity.Category{electronics, accessories} {
		if err := catalog.AddCategory(category); err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
	}

	products := []*entity.Product{
		entity.NewProduct(ProductLaptop, "Laptop", 1500.0, 10, electronics),
		entity.NewProduct(ProductMouse, "Mouse", 25.0, 50, accessories),
	}
	for _, product := range products {
		if err := catalog.Add(product); err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
	}

	customers := []*entity.Customer{
		entity.NewCustomer(CustomerAlice, "Alice Johnson", "alice.johnson@example.com"),
		entity.NewCustomer(CustomerBob, "Bob Smith", "bob.smith@example.com"),
	}
	for _, customer := range customers {
		if err := directory.Add(customer); err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
	}

	if err := catalog.SetDiscount(ProductLaptop, entity.PercentageDiscount(10)); err != nil {
		return fmt.Errorf("failed to seed discount: %w", err)
	}
	if err := catalog.SetDiscount(ProductMouse, entity.FlatDiscount(5)); err != nil {
		return fmt.Errorf("failed to seed discount: %w", err)
	}

	return nil
}
