// Package resolver implements the dependent-selection cascade:
// product choice narrows the vendor choices, and a complete (product,
// vendor) pair resolves to the unique vendor-product join record that
// supplies stock, price and cost.
//
// Resolution is a pure function of (selection, snapshot view). It never
// fails: absence is represented as empty sets and zero values, and only
// submission-time validation turns absence into an error.
package resolver

import (
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/inventory-admin-client/internal/model"
	"github.com/fairyhunter13/inventory-admin-client/internal/store"
)

// Selection is the in-progress dependent choice. Zero ids mean unset.
type Selection struct {
	ProductID int64
	VendorID  int64
}

// WithProduct returns the selection with the product set. Changing the
// product always clears the vendor so a choice made against a previous
// product can never carry forward.
func (s Selection) WithProduct(id int64) Selection {
	if id == s.ProductID {
		return s
	}
	return Selection{ProductID: id}
}

// WithVendor returns the selection with the vendor set. A vendor cannot
// be chosen before a product.
func (s Selection) WithVendor(id int64) Selection {
	if s.ProductID == 0 {
		return s
	}
	s.VendorID = id
	return s
}

// AvailableVendors lists the vendors selectable for the current product:
// those referenced by its join records. Empty when no product is chosen
// or the product is unknown to the view.
func AvailableVendors(v *store.View, sel Selection) []model.Vendor {
	if sel.ProductID == 0 {
		return nil
	}
	return v.VendorsForProduct(sel.ProductID)
}

// ResolvedJoin returns the unique join record for a complete selection.
// ok is false when either side is unset or no record matches; the
// returned record is then zero-valued so display fields read as
// zero/empty rather than erroring.
func ResolvedJoin(v *store.View, sel Selection) (model.VendorProduct, bool) {
	return v.VendorProductFor(sel.ProductID, sel.VendorID)
}

// Totals are numeric derivations of a resolved join record and an
// in-progress quantity. They are recomputed from scratch on every call.
type Totals struct {
	TotalPrice decimal.Decimal
	TotalCost  decimal.Decimal
}

// DeriveTotals computes price and cost totals for the given quantity.
// A zero-valued join record yields zero totals.
func DeriveTotals(vp model.VendorProduct, qty int64) Totals {
	q := decimal.NewFromInt(qty)
	return Totals{
		TotalPrice: vp.Price.Mul(q),
		TotalCost:  vp.Cost.Mul(q),
	}
}

// ViewModel is the resolved output handed to the presentation layer.
type ViewModel struct {
	AvailableVendors []model.Vendor
	Join             model.VendorProduct
	JoinFound        bool
	Totals           Totals
}

// Resolve produces the full view-model for a selection and quantity in
// one pass over the current view.
func Resolve(v *store.View, sel Selection, qty int64) ViewModel {
	join, ok := ResolvedJoin(v, sel)
	return ViewModel{
		AvailableVendors: AvailableVendors(v, sel),
		Join:             join,
		JoinFound:        ok,
		Totals:           DeriveTotals(join, qty),
	}
}
