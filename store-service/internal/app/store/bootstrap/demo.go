package bootstrap

import (
	"context"
	"fmt"
	"io"

	"retailcore/store-service/internal/app/store/render"
	"retailcore/store-service/internal/app/store/service"
)

// Purchase - одна покупка демонстрационного сценария
type Purchase struct {
	CustomerID int
	ProductID  int
	Quantity   int
}

// DefaultPurchases - Алиса покупает 2 ноутбука, Боб 3 мыши
var DefaultPurchases = []Purchase{
	{CustomerID: CustomerAlice, ProductID: ProductLaptop, Quantity: 2},
	{CustomerID: CustomerBob, ProductID: ProductMouse, Quantity: 3},
}

// Demo прогоняет сценарий: транзакции, остатки, истории покупок, отчёты
type Demo struct {
	Catalog   *service.ProductCatalog
	Directory *service.CustomerDirectory
	Processor *service.TransactionProcessor
	Reports   *service.ReportService
	Receipts  render.ReceiptFormatter
	Out       io.Writer
}

// Run выполняет сценарий. Первая ошибка прерывает прогон
func (d *Demo) Run(ctx context.Context, purchases []Purchase, reports []string) error {
	fmt.Fprintln(d.Out, "\n--- Processing Transactions ---")
	for _, p := range purchases {
		result, err := d.Processor.Process(ctx, p.CustomerID, p.ProductID, p.Quantity)
		if err != nil {
			return fmt.Errorf("transaction customer=%d product=%d quantity=%d: %w",
				p.CustomerID, p.ProductID, p.Quantity, err)
		}

		fmt.Fprint(d.Out, render.TransactionDetails(*result))
		receipt, err := d.Receipts.Receipt(*result)
		if err != nil {
			return err
		}
		fmt.Fprint(d.Out, receipt)
	}

	fmt.Fprintln(d.Out, "\n--- Displaying Inventory ---")
	fmt.Fprint(d.Out, render.InventoryView(d.Catalog.ListAll()))

	fmt.Fprintln(d.Out, "\n--- Displaying Purchase History ---")
	for _, customer := range d.Directory.ListAll() {
		records, err := d.Directory.HistoryOf(customer.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.Out, "%s's history:\n", customer.Name)
		fmt.Fprint(d.Out, render.PlainTextHistory(records))
	}

	fmt.Fprintln(d.Out, "\n--- Generating Reports ---")
	for _, name := range reports {
		report, err := d.Reports.Generate(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprint(d.Out, report)
	}

	fmt.Fprintln(d.Out, "\n--- Program End ---")
	return nil
}
