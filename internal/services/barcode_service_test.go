package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/services"
)

func TestComposeEAN13(t *testing.T) {
	code, err := services.ComposeEAN13("200", 1)
	require.NoError(t, err)
	assert.Equal(t, "2000000000015", code)
	assert.True(t, services.ValidateEAN13(code))

	code, err = services.ComposeEAN13("200", 42)
	require.NoError(t, err)
	assert.Len(t, code, 13)
	assert.True(t, services.ValidateEAN13(code))

	// Longer prefixes shrink the item reference space
	code, err = services.ComposeEAN13("400638", 133393)
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", code)
}

func TestComposeEAN13Errors(t *testing.T) {
	_, err := services.ComposeEAN13("200", -1)
	assert.Error(t, err)

	_, err = services.ComposeEAN13("123456789012", 1)
	assert.Error(t, err)

	// Sequence overflows the payload width
	_, err = services.ComposeEAN13("20012345678", 100)
	assert.Error(t, err)
}

func TestValidateEAN13(t *testing.T) {
	// Real-world code with a known-good check digit
	assert.True(t, services.ValidateEAN13("4006381333931"))

	assert.False(t, services.ValidateEAN13("4006381333932"))
	assert.False(t, services.ValidateEAN13("400638133393"))
	assert.False(t, services.ValidateEAN13(""))
	assert.False(t, services.ValidateEAN13("400638133393a"))
}

func TestNextBarcodeSequence(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "barcodes@example.com")

	barcodeService := services.NewBarcodeService(db, "200")

	first, err := barcodeService.NextBarcode(user.ID)
	require.NoError(t, err)
	second, err := barcodeService.NextBarcode(user.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, services.ValidateEAN13(first))
	assert.True(t, services.ValidateEAN13(second))

	// Sequences are per owner
	other := createTestUser(t, db, "other@example.com")
	otherFirst, err := barcodeService.NextBarcode(other.ID)
	require.NoError(t, err)
	assert.Equal(t, first, otherFirst)
}

func TestAssignBarcode(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "assign@example.com")
	store := createTestStore(t, db, user.ID, "Main Store", false, nil)
	product := createTestProduct(t, db, user.ID, "Milk 500ml", store.ID, 10)

	barcodeService := services.NewBarcodeService(db, "200")
	require.NoError(t, barcodeService.AssignBarcode(product))
	require.NotNil(t, product.Barcode)
	assert.True(t, services.ValidateEAN13(*product.Barcode))

	productService := services.NewProductService(db, 5, 7, 14)
	found, err := productService.GetProductByBarcode(*product.Barcode, user.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
}
