package render

import (
	"testing"

	"retailcore/store-service/internal/app/store/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResult() entity.TransactionResult {
	return entity.TransactionResult{
		CustomerID:    1,
		CustomerName:  "Alice Johnson",
		ProductID:     101,
		ProductName:   "Laptop",
		Quantity:      2,
		UnitPrice:     1350,
		OriginalPrice: 1500,
		TotalCost:     2700,
	}
}

func TestNewReceiptFormatter(t *testing.T) {
	text, err := NewReceiptFormatter("text")
	require.NoError(t, err)
	assert.IsType(t, TextReceipt{}, text)

	empty, err := NewReceiptFormatter("")
	require.NoError(t, err)
	assert.IsType(t, TextReceipt{}, empty)

	html, err := NewReceiptFormatter("HTML")
	require.NoError(t, err)
	assert.IsType(t, HTMLReceipt{}, html)

	_, err = NewReceiptFormatter("pdf")
	assert.Error(t, err)
}

func TestTextReceipt_Receipt(t *testing.T) {
	// Act
	receipt, err := TextReceipt{}.Receipt(newTestResult())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "\n--- Receipt ---\n"+
		"Customer: Alice Johnson\n"+
		"Product: Laptop\n"+
		"Quantity: 2\n"+
		"Total Cost: $2700.00\n"+
		"-----------------\n\n", receipt)
}

func TestHTMLReceipt_Receipt_EscapesInput(t *testing.T) {
	// Arrange
	result := newTestResult()
	result.CustomerName = "<script>alert(1)</script>"

	// Act
	receipt, err := HTMLReceipt{}.Receipt(result)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, receipt, "<h1>Receipt</h1>")
	assert.Contains(t, receipt, "$2700.00")
	assert.Contains(t, receipt, "&lt;script&gt;")
	assert.NotContains(t, receipt, "<script>")
}

func TestTransactionDetails(t *testing.T) {
	details := TransactionDetails(newTestResult())

	assert.Contains(t, details, "Customer: Alice Johnson (ID: 1)")
	assert.Contains(t, details, "Original Price: $1500.00")
	assert.Contains(t, details, "Discounted Price: $1350.00")
	assert.Contains(t, details, "Total Cost: $2700.00")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0.00", Money(0))
	assert.Equal(t, "19.99", Money(19.989))
	assert.Equal(t, "1350.00", Money(1500*0.9))
}
