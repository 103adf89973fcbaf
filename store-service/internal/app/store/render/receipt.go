package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"retailcore/store-service/internal/app/store/entity"
)

// Форматы чеков, выбираются через конфигурацию RECEIPT_FORMAT
const (
	ReceiptText = "text"
	ReceiptHTML = "html"
)

// ReceiptFormatter формирует чек по результату транзакции
type ReceiptFormatter interface {
	Receipt(result entity.TransactionResult) (string, error)
}

// NewReceiptFormatter возвращает форматтер по имени формата
func NewReceiptFormatter(format string) (ReceiptFormatter, error) {
	switch strings.ToLower(format) {
	case ReceiptText, "":
		return TextReceipt{}, nil
	case ReceiptHTML:
		return HTMLReceipt{}, nil
	}
	return nil, fmt.Errorf("unknown receipt format %q", format)
}

// TextReceipt - чек в виде простого текста
type TextReceipt struct{}

// Receipt форматирует чек построчно, суммы округлены до центов
func (TextReceipt) Receipt(result entity.TransactionResult) (string, error) {
	var b strings.Builder
	b.WriteString("\n--- Receipt ---\n")
	fmt.Fprintf(&b, "Customer: %s\n", result.CustomerName)
	fmt.Fprintf(&b, "Product: %s\n", result.ProductName)
	fmt.Fprintf(&b, "Quantity: %d\n", result.Quantity)
	fmt.Fprintf(&b, "Total Cost: $%s\n", Money(result.TotalCost))
	b.WriteString("-----------------\n\n")
	return b.String(), nil
}

var htmlReceiptTemplate = template.Must(template.New("receipt").Parse(`<html>
<head><title>Receipt</title></head>
<body>
<h1>Receipt</h1>
<p><strong>Customer:</strong> {{.CustomerName}}</p>
<p><strong>Product:</strong> {{.ProductName}}</p>
<p><strong>Quantity:</strong> {{.Quantity}}</p>
<p><strong>Total Cost:</strong> ${{.Total}}</p>
</body>
</html>
`))

// HTMLReceipt - чек в виде HTML страницы, пользовательские строки экранируются
type HTMLReceipt struct{}

// Receipt рендерит чек через html/template
func (HTMLReceipt) Receipt(result entity.TransactionResult) (string, error) {
	var buf bytes.Buffer
	err := htmlReceiptTemplate.Execute(&buf, struct {
		CustomerName string
		ProductName  string
		Quantity     int
		Total        string
	}{
		CustomerName: result.CustomerName,
		ProductName:  result.ProductName,
		Quantity:     result.Quantity,
		Total:        Money(result.TotalCost),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render html receipt: %w", err)
	}
	return buf.String(), nil
}

// TransactionDetails - подробная сводка по транзакции (цена до и после скидки)
func TransactionDetails(result entity.TransactionResult) string {
	var b strings.Builder
	b.WriteString("\nTransaction Details:\n")
	fmt.Fprintf(&b, "  Customer: %s (ID: %d)\n", result.CustomerName, result.CustomerID)
	fmt.Fprintf(&b, "  Product: %s (ID: %d)\n", result.ProductName, result.ProductID)
	fmt.Fprintf(&b, "  Original Price: $%s\n", Money(result.OriginalPrice))
	fmt.Fprintf(&b, "  Discounted Price: $%s\n", Money(result.UnitPrice))
	fmt.Fprintf(&b, "  Quantity: %d\n", result.Quantity)
	fmt.Fprintf(&b, "  Total Cost: $%s\n", Money(result.TotalCost))
	return b.String()
}

// Money округляет сумму до двух знаков
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
