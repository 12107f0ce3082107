package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphDefaults(t *testing.T) {
	g := NewGraph()

	assert.ElementsMatch(t,
		[]Tag{TagDropdown, TagVendorList, TagDashboard},
		g.Invalidates(MutationStockAdjust))
	assert.ElementsMatch(t,
		[]Tag{TagProductList, TagDropdown, TagDashboard},
		g.Invalidates(MutationProductCreate))
	assert.ElementsMatch(t,
		[]Tag{TagDropdown, TagProductList, TagDashboard},
		g.Invalidates(MutationProductReturn))
	assert.Empty(t, g.Invalidates(MutationKind("unknown")))
}

func TestGraphDeclareReplaces(t *testing.T) {
	g := NewGraph()
	g.Declare(MutationStockAdjust, TagDashboard)
	assert.Equal(t, []Tag{TagDashboard}, g.Invalidates(MutationStockAdjust))
}
