package form

import "github.com/fairyhunter13/inventory-admin-client/internal/store"

// Fields specific to the return and vendor-product forms.
const (
	FieldReturnType   = "return_type"
	FieldReason       = "reason"
	FieldBillNumber   = "bill_number"
	FieldCustomerName = "customer_name"
	FieldRefundAmount = "refund_amount"
	FieldNotes        = "notes"
	FieldVendorCode   = "vendor_code"
	FieldPrice        = "price"
	FieldCost         = "cost"
	FieldProductName  = "product_name"
	FieldCategory     = "category"
	FieldDescription  = "description"
	FieldImage        = "image"
)

// Return type discriminator values as they appear in the form.
const (
	ReturnTypeSoldValue    = "1"
	ReturnTypeNotSoldValue = "2"
)

// NewStockAdjustment builds the stock adjustment form: product and
// vendor choices plus the new stock count.
func NewStockAdjustment(view func() *store.View) *Session {
	return NewSession(view, FieldStock,
		Required(FieldProduct, "Product"),
		Required(FieldVendor, "Vendor"),
		Positive(FieldStock, "Stock"),
	)
}

// NewProductReturn builds the product return form. The bill number is
// required only for returns of sold items.
func NewProductReturn(view func() *store.View) *Session {
	return NewSession(view, FieldQuantity,
		Required(FieldProduct, "Product"),
		Positive(FieldQuantity, "Quantity"),
		Required(FieldReason, "Return reason"),
		RequiredIf(FieldBillNumber, "Bill number", FieldReturnType, ReturnTypeSoldValue),
	)
}

// NewVendorProduct builds the form adding one vendor's terms for an
// existing product.
func NewVendorProduct(view func() *store.View) *Session {
	return NewSession(view, FieldStock,
		Required(FieldProduct, "Product"),
		Required(FieldVendor, "Vendor"),
		Required(FieldVendorCode, "Vendor code"),
		Positive(FieldPrice, "Price"),
		Positive(FieldCost, "Cost"),
		Positive(FieldStock, "Stock"),
	)
}

// NewProduct builds the create/edit product form, which carries the
// initial vendor terms alongside the product fields.
func NewProduct(view func() *store.View) *Session {
	return NewSession(view, FieldStock,
		Required(FieldProductName, "Product name"),
		Required(FieldCategory, "Category"),
		Required(FieldVendor, "Vendor"),
		Required(FieldVendorCode, "Vendor code"),
		Positive(FieldPrice, "Price"),
		Positive(FieldCost, "Cost"),
		Positive(FieldStock, "Stock"),
	)
}
