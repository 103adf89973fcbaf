package service

import (
	"testing"

	"retailcore/store-service/internal/app/store/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *CustomerDirectory {
	t.Helper()

	directory := NewCustomerDirectory()
	require.NoError(t, directory.Add(entity.NewCustomer(2, "Bob Smith", "bob.smith@example.com")))
	require.NoError(t, directory.Add(entity.NewCustomer(1, "Alice Johnson", "alice.johnson@example.com")))
	return directory
}

func TestCustomerDirectory_Add_Duplicate(t *testing.T) {
	// Arrange
	directory := newTestDirectory(t)

	// Act
	err := directory.Add(entity.NewCustomer(1, "Impostor", "x@example.com"))

	// Assert
	assert.ErrorIs(t, err, entity.ErrDuplicateKey)
	customer, err := directory.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", customer.Name)
}

func TestCustomerDirectory_Get_NotFound(t *testing.T) {
	directory := newTestDirectory(t)

	_, err := directory.Get(42)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCustomerDirectory_ListAll_SortedByID(t *testing.T) {
	directory := newTestDirectory(t)

	customers := directory.ListAll()

	require.Len(t, customers, 2)
	assert.Equal(t, 1, customers[0].ID)
	assert.Equal(t, 2, customers[1].ID)
}

func TestCustomerDirectory_HistoryOf_EmptyForNewCustomer(t *testing.T) {
	directory := newTestDirectory(t)

	records, err := directory.HistoryOf(1)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCustomerDirectory_HistoryOf_UnknownCustomer(t *testing.T) {
	directory := newTestDirectory(t)

	_, err := directory.HistoryOf(42)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCustomerDirectory_RecordPurchase_KeepsOrder(t *testing.T) {
	// Arrange
	directory := newTestDirectory(t)

	// Act
	require.NoError(t, directory.RecordPurchase(1, "Laptop", 2, 2700))
	require.NoError(t, directory.RecordPurchase(1, "Mouse", 1, 20))

	// Assert
	records, err := directory.HistoryOf(1)
	require.NoError(t, err)
	assert.Equal(t, []entity.PurchaseRecord{
		{ProductName: "Laptop", Quantity: 2, TotalCost: 2700},
		{ProductName: "Mouse", Quantity: 1, TotalCost: 20},
	}, records)

	bob, err := directory.HistoryOf(2)
	require.NoError(t, err)
	assert.Empty(t, bob)
}

func TestCustomerDirectory_RecordPurchase_UnknownCustomer(t *testing.T) {
	directory := newTestDirectory(t)
	before := directory.Version()

	err := directory.RecordPurchase(42, "Laptop", 1, 1)

	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "cannot add purchase")
	assert.Equal(t, before, directory.Version())
}

func TestCustomerDirectory_UpdateContact(t *testing.T) {
	directory := newTestDirectory(t)

	updated, err := directory.UpdateContact(2, "", "robert@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", updated.Name)
	assert.Equal(t, "robert@example.com", updated.Email)

	_, err = directory.UpdateContact(42, "X", "")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCustomerDirectory_Get_ReturnsCopy(t *testing.T) {
	directory := newTestDirectory(t)

	customer, err := directory.Get(1)
	require.NoError(t, err)
	customer.SetName("Changed")

	stored, _ := directory.Get(1)
	assert.Equal(t, "Alice Johnson", stored.Name)
}
