package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fairyhunter13/inventory-admin-client/internal/model"
)

func indexedSnapshot() model.Snapshot {
	return model.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Mat"},
			{ID: 2, Name: "Wiper"},
		},
		Vendors: []model.Vendor{
			{ID: 9, Name: "AutoParts"},
			{ID: 10, Name: "Speedy"},
		},
		VendorProducts: []model.VendorProduct{
			{ID: 77, Product: 1, Vendor: 9, Stock: 15},
			{ID: 78, Product: 1, Vendor: 10, Stock: 40},
			{ID: 79, Product: 2, Vendor: 9, Stock: 8},
		},
	}
}

func TestIndexVendorProductsForProduct(t *testing.T) {
	s := New()
	s.Load(indexedSnapshot())
	v := s.View()

	got := v.VendorProductsForProduct(1)
	if len(got) != 2 || got[0].ID != 77 || got[1].ID != 78 {
		t.Fatalf("unexpected join records: %+v", got)
	}
	if got := v.VendorProductsForProduct(0); len(got) != 0 {
		t.Fatalf("unset product must yield empty, got %+v", got)
	}
	if got := v.VendorProductsForProduct(99); len(got) != 0 {
		t.Fatalf("unknown product must yield empty, got %+v", got)
	}
}

func TestIndexVendorProductFor(t *testing.T) {
	s := New()
	s.Load(indexedSnapshot())
	v := s.View()

	vp, ok := v.VendorProductFor(1, 10)
	if !ok || vp.ID != 78 {
		t.Fatalf("expected join 78, got %+v ok=%v", vp, ok)
	}
	if _, ok := v.VendorProductFor(2, 10); ok {
		t.Fatalf("no record expected for (2,10)")
	}
	if _, ok := v.VendorProductFor(0, 9); ok {
		t.Fatalf("unset product must not resolve")
	}
	if _, ok := v.VendorProductFor(1, 0); ok {
		t.Fatalf("unset vendor must not resolve")
	}
}

func TestIndexVendorsForProduct(t *testing.T) {
	s := New()
	s.Load(indexedSnapshot())
	want := []model.Vendor{
		{ID: 9, Name: "AutoParts"},
		{ID: 10, Name: "Speedy"},
	}
	got := s.View().VendorsForProduct(1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("vendors mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexVendorDetailFallback(t *testing.T) {
	s := New()
	s.Load(model.Snapshot{
		Products: []model.Product{{ID: 1, Name: "Mat"}},
		VendorProducts: []model.VendorProduct{
			{ID: 77, Product: 1, Vendor: 9, VendorDetail: &model.Vendor{ID: 9, Name: "AutoParts"}},
		},
	})
	got := s.View().VendorsForProduct(1)
	if len(got) != 1 || got[0].Name != "AutoParts" {
		t.Fatalf("expected embedded detail fallback, got %+v", got)
	}
}

func TestIndexRebuiltPerLoad(t *testing.T) {
	s := New()
	s.Load(indexedSnapshot())
	if got := s.View().VendorProductsForProduct(1); len(got) != 2 {
		t.Fatalf("expected 2 joins, got %d", len(got))
	}
	snap := indexedSnapshot()
	snap.VendorProducts = snap.VendorProducts[:1]
	s.Load(snap)
	if got := s.View().VendorProductsForProduct(1); len(got) != 1 {
		t.Fatalf("stale index: expected 1 join after reload, got %d", len(got))
	}
}
