// Package cache implements the tag-keyed query cache and the mutation
// invalidation protocol that keeps independently fetched query results
// coherent after writes.
package cache

// Tag labels one cached query result and appears in the invalidation
// sets of the mutations that can make it stale.
type Tag string

// Cached query tags, mirroring the independently fetched views.
const (
	TagProductList Tag = "product-list"
	TagVendorList  Tag = "vendor-list"
	TagDropdown    Tag = "vendor-product-dropdown"
	TagDashboard   Tag = "dashboard-summary"
)

// MutationKind identifies one write operation for invalidation lookup.
type MutationKind string

// Mutation kinds understood by the invalidation graph.
const (
	MutationProductCreate       MutationKind = "product-create"
	MutationProductUpdate       MutationKind = "product-update"
	MutationProductDelete       MutationKind = "product-delete"
	MutationVendorProductCreate MutationKind = "vendor-product-create"
	MutationStockAdjust         MutationKind = "stock-adjust"
	MutationProductReturn       MutationKind = "product-return"
)

// Graph maps each mutation kind to the set of tags it invalidates.
// Correctness favors over-invalidation: a tag belongs to a kind's set
// whenever the underlying data could change, even indirectly.
type Graph struct {
	m map[MutationKind][]Tag
}

// NewGraph returns a graph preloaded with the default invalidation sets.
func NewGraph() *Graph {
	g := &Graph{m: make(map[MutationKind][]Tag)}
	g.Declare(MutationProductCreate, TagProductList, TagDropdown, TagDashboard)
	g.Declare(MutationProductUpdate, TagProductList, TagDropdown, TagDashboard)
	g.Declare(MutationProductDelete, TagProductList, TagDropdown, TagDashboard)
	g.Declare(MutationVendorProductCreate, TagVendorList, TagDropdown, TagDashboard)
	g.Declare(MutationStockAdjust, TagDropdown, TagVendorList, TagDashboard)
	g.Declare(MutationProductReturn, TagDropdown, TagProductList, TagDashboard)
	return g
}

// Declare replaces the invalidation set for a mutation kind.
func (g *Graph) Declare(kind MutationKind, tags ...Tag) {
	g.m[kind] = append([]Tag(nil), tags...)
}

// Invalidates returns the tags marked stale by a successful mutation of
// the given kind. Unknown kinds invalidate nothing.
func (g *Graph) Invalidates(kind MutationKind) []Tag {
	return append([]Tag(nil), g.m[kind]...)
}
