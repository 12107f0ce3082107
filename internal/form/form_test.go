package form

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/inventory-admin-client/internal/model"
	"github.com/fairyhunter13/inventory-admin-client/internal/store"
)

func testView() func() *store.View {
	s := store.New()
	s.Load(model.Snapshot{
		Products: []model.Product{{ID: 1, Name: "Mat"}},
		Vendors:  []model.Vendor{{ID: 9, Name: "AutoParts"}},
		VendorProducts: []model.VendorProduct{
			{ID: 77, Product: 1, Vendor: 9, Stock: 15, Price: decimal.NewFromInt(500)},
		},
	})
	return s.View
}

func TestStockAdjustmentValidation(t *testing.T) {
	s := NewStockAdjustment(testView())

	errs := s.Validate()
	require.Len(t, errs, 3)
	assert.Equal(t, CodeMissingField, errs[FieldProduct].Code)
	assert.Equal(t, CodeMissingField, errs[FieldVendor].Code)
	assert.Equal(t, CodeInvalidRange, errs[FieldStock].Code)
	assert.False(t, s.CanSubmit())

	s.Set(FieldProduct, "1")
	s.Set(FieldVendor, "9")
	s.Set(FieldStock, "50")
	errs = s.Validate()
	assert.Empty(t, errs)
	assert.True(t, s.CanSubmit())
}

func TestStockMustBePositive(t *testing.T) {
	s := NewStockAdjustment(testView())
	s.Set(FieldProduct, "1")
	s.Set(FieldVendor, "9")

	for _, bad := range []string{"0", "-5", "abc", ""} {
		s.Set(FieldStock, bad)
		errs := s.Validate()
		require.Contains(t, errs, FieldStock, "stock %q must fail", bad)
		assert.Equal(t, CodeInvalidRange, errs[FieldStock].Code)
	}
}

func TestOptimisticErrorClearing(t *testing.T) {
	s := NewStockAdjustment(testView())
	errs := s.Validate()
	require.Contains(t, errs, FieldStock)

	s.Set(FieldStock, "10")
	assert.NotContains(t, s.Errors(), FieldStock, "error clears the moment the field changes")
	assert.Contains(t, s.Errors(), FieldProduct, "other errors stay until revalidation")
}

func TestProductChangeClearsVendor(t *testing.T) {
	s := NewStockAdjustment(testView())
	s.Set(FieldProduct, "1")
	s.Set(FieldVendor, "9")
	require.Equal(t, int64(9), s.Selection().VendorID)

	s.Set(FieldProduct, "2")
	assert.Empty(t, s.Value(FieldVendor))
	assert.Zero(t, s.Selection().VendorID)
}

func TestReselectingSameProductKeepsVendor(t *testing.T) {
	s := NewStockAdjustment(testView())
	s.Set(FieldProduct, "1")
	s.Set(FieldVendor, "9")

	s.Set(FieldProduct, "1")
	assert.Equal(t, "9", s.Value(FieldVendor), "same-product set must not clear the vendor field")
	assert.Equal(t, int64(9), s.Selection().VendorID)

	// field value and selection stay in agreement: the join still resolves
	// and the vendor passes validation
	vm := s.ViewModel()
	require.True(t, vm.JoinFound)
	assert.Equal(t, int64(77), vm.Join.ID)
	s.Set(FieldStock, "10")
	assert.NotContains(t, s.Validate(), FieldVendor)
}

func TestReturnConditionalBillNumber(t *testing.T) {
	s := NewProductReturn(testView())
	s.Set(FieldProduct, "1")
	s.Set(FieldVendor, "9")
	s.Set(FieldQuantity, "3")
	s.Set(FieldReason, "defective")

	// not sold: bill number optional
	s.Set(FieldReturnType, ReturnTypeNotSoldValue)
	assert.Empty(t, s.Validate())

	// sold: bill number required
	s.Set(FieldReturnType, ReturnTypeSoldValue)
	errs := s.Validate()
	require.Contains(t, errs, FieldBillNumber)
	assert.Equal(t, CodeConditionalRequired, errs[FieldBillNumber].Code)

	s.Set(FieldBillNumber, "B-1001")
	assert.Empty(t, s.Validate())
}

func TestSessionViewModel(t *testing.T) {
	s := NewStockAdjustment(testView())
	s.Set(FieldProduct, "1")

	vm := s.ViewModel()
	require.Len(t, vm.AvailableVendors, 1)
	assert.Equal(t, "AutoParts", vm.AvailableVendors[0].Name)
	assert.False(t, vm.JoinFound)
	assert.Zero(t, vm.Join.Stock)

	s.Set(FieldVendor, "9")
	s.Set(FieldStock, "3")
	vm = s.ViewModel()
	require.True(t, vm.JoinFound)
	assert.Equal(t, int64(15), vm.Join.Stock)
	assert.True(t, vm.Totals.TotalPrice.Equal(decimal.NewFromInt(1500)))
}

func TestSessionReset(t *testing.T) {
	s := NewStockAdjustment(testView())
	s.Set(FieldProduct, "1")
	s.Set(FieldVendor, "9")
	s.Validate()

	s.Reset()
	assert.Empty(t, s.Value(FieldProduct))
	assert.Empty(t, s.Errors())
	assert.Zero(t, s.Selection().ProductID)
}

func TestTypedAccessors(t *testing.T) {
	s := NewStockAdjustment(testView())
	s.Set(FieldStock, "42")
	assert.Equal(t, int64(42), s.Int(FieldStock))
	assert.Zero(t, s.Int("missing"))

	s.Set(FieldPrice, "499.99")
	assert.True(t, s.Decimal(FieldPrice).Equal(decimal.RequireFromString("499.99")))
	assert.True(t, s.Decimal("missing").IsZero())
}
