// Package store implements the in-memory entity store: the latest
// fetched snapshot of products, vendors and vendor-product join records,
// plus a derived relational index over it.
package store

import (
	"slices"
	"sync"

	"github.com/fairyhunter13/inventory-admin-client/internal/model"
)

// Store holds the last loaded snapshot. Loads replace the whole snapshot
// atomically; readers obtain an immutable View and never observe a
// partially applied load.
type Store struct {
	mu      sync.RWMutex
	view    *View
	lastSeq uint64
}

// New returns an empty Store. Reads against it yield empty collections,
// not errors.
func New() *Store {
	return &Store{view: newView(model.Snapshot{}, 0)}
}

// Load replaces the held collections with the given snapshot.
func (s *Store) Load(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = newView(snap, s.view.version+1)
}

// LoadIfNewer applies the snapshot only when seq is newer than the
// sequence of the last applied load. A response from a superseded fetch
// is discarded. Reports whether the snapshot was applied.
func (s *Store) LoadIfNewer(snap model.Snapshot, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.lastSeq {
		return false
	}
	s.lastSeq = seq
	s.view = newView(snap, s.view.version+1)
	return true
}

// View returns the current immutable snapshot view.
func (s *Store) View() *View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Version reports how many loads have been applied. It changes exactly
// when the collections change identity.
func (s *Store) Version() uint64 { return s.View().version }

// Product returns the product with the given id from the current view.
func (s *Store) Product(id int64) (model.Product, bool) { return s.View().Product(id) }

// Vendor returns the vendor with the given id from the current view.
func (s *Store) Vendor(id int64) (model.Vendor, bool) { return s.View().Vendor(id) }

// VendorProduct returns the join record with the given id from the
// current view.
func (s *Store) VendorProduct(id int64) (model.VendorProduct, bool) {
	return s.View().VendorProduct(id)
}

// View is one immutable loaded snapshot. All lookups on a View are
// mutually consistent because a View is never mutated after creation.
type View struct {
	version        uint64
	products       map[int64]model.Product
	vendors        map[int64]model.Vendor
	vendorProducts map[int64]model.VendorProduct

	once sync.Once
	idx  *index
}

func newView(snap model.Snapshot, version uint64) *View {
	v := &View{
		version:        version,
		products:       make(map[int64]model.Product, len(snap.Products)),
		vendors:        make(map[int64]model.Vendor, len(snap.Vendors)),
		vendorProducts: make(map[int64]model.VendorProduct, len(snap.VendorProducts)),
	}
	for _, p := range snap.Products {
		v.products[p.ID] = p
	}
	for _, vd := range snap.Vendors {
		v.vendors[vd.ID] = vd
	}
	for _, vp := range snap.VendorProducts {
		v.vendorProducts[vp.ID] = vp
	}
	return v
}

// Version returns the load counter this view was built at.
func (v *View) Version() uint64 { return v.version }

// Product returns the product with the given id.
func (v *View) Product(id int64) (model.Product, bool) {
	p, ok := v.products[id]
	return p, ok
}

// Vendor returns the vendor with the given id.
func (v *View) Vendor(id int64) (model.Vendor, bool) {
	vd, ok := v.vendors[id]
	return vd, ok
}

// VendorProduct returns the join record with the given id.
func (v *View) VendorProduct(id int64) (model.VendorProduct, bool) {
	vp, ok := v.vendorProducts[id]
	return vp, ok
}

// Products returns all products, ordered by id.
func (v *View) Products() []model.Product {
	out := make([]model.Product, 0, len(v.products))
	for _, id := range sortedKeys(v.products) {
		out = append(out, v.products[id])
	}
	return out
}

// Vendors returns all vendors, ordered by id.
func (v *View) Vendors() []model.Vendor {
	out := make([]model.Vendor, 0, len(v.vendors))
	for _, id := range sortedKeys(v.vendors) {
		out = append(out, v.vendors[id])
	}
	return out
}

func sortedKeys[T any](m map[int64]T) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
