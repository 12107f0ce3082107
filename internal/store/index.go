package store

import (
	"slices"

	"github.com/fairyhunter13/inventory-admin-client/internal/model"
)

type pairKey struct {
	product int64
	vendor  int64
}

// index answers relational queries over one View without scanning. It is
// built at most once per View and never mutated incrementally; a new
// load produces a new View and therefore a fresh index.
type index struct {
	byProduct map[int64][]int64
	byPair    map[pairKey]int64
}

func (v *View) buildIndex() {
	idx := &index{
		byProduct: make(map[int64][]int64),
		byPair:    make(map[pairKey]int64, len(v.vendorProducts)),
	}
	for _, id := range sortedKeys(v.vendorProducts) {
		vp := v.vendorProducts[id]
		idx.byProduct[vp.Product] = append(idx.byProduct[vp.Product], id)
		idx.byPair[pairKey{product: vp.Product, vendor: vp.Vendor}] = id
	}
	v.idx = idx
}

func (v *View) index() *index {
	v.once.Do(v.buildIndex)
	return v.idx
}

// VendorProductsForProduct returns the join records referencing the
// given product, ordered by id. Unset (zero) or unknown product ids
// yield an empty slice.
func (v *View) VendorProductsForProduct(productID int64) []model.VendorProduct {
	ids := v.index().byProduct[productID]
	out := make([]model.VendorProduct, 0, len(ids))
	for _, id := range ids {
		out = append(out, v.vendorProducts[id])
	}
	return out
}

// VendorProductFor returns the unique join record for a (product,
// vendor) pair, or false when either id is unset or no record matches.
func (v *View) VendorProductFor(productID, vendorID int64) (model.VendorProduct, bool) {
	if productID == 0 || vendorID == 0 {
		return model.VendorProduct{}, false
	}
	id, ok := v.index().byPair[pairKey{product: productID, vendor: vendorID}]
	if !ok {
		return model.VendorProduct{}, false
	}
	return v.vendorProducts[id], true
}

// VendorsForProduct returns the vendors referenced by the product's join
// records, ordered by join-record id. Unknown vendor references are
// resolved from the embedded vendor detail when the vendors collection
// lacks them.
func (v *View) VendorsForProduct(productID int64) []model.Vendor {
	var out []model.Vendor
	var seen []int64
	for _, vp := range v.VendorProductsForProduct(productID) {
		if slices.Contains(seen, vp.Vendor) {
			continue
		}
		seen = append(seen, vp.Vendor)
		if vd, ok := v.vendors[vp.Vendor]; ok {
			out = append(out, vd)
			continue
		}
		if vp.VendorDetail != nil {
			out = append(out, *vp.VendorDetail)
		}
	}
	return out
}
