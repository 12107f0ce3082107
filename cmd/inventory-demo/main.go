// Package main runs a short scripted session against a running
// inventory API: fetch the dropdown, resolve a selection, adjust stock
// and show the refreshed dashboard. Point BASE_URL at the simulator.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fairyhunter13/inventory-admin-client/internal/api"
	"github.com/fairyhunter13/inventory-admin-client/internal/config"
	"github.com/fairyhunter13/inventory-admin-client/internal/form"
	"github.com/fairyhunter13/inventory-admin-client/internal/inventory"
	"github.com/fairyhunter13/inventory-admin-client/internal/obs"
	"github.com/fairyhunter13/inventory-admin-client/internal/resolver"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()

	client := inventory.New(api.New(cfg))
	ctx := context.Background()

	view, err := client.Dropdown(ctx)
	if err != nil {
		fatal("fetch dropdown", err)
	}
	products := view.Products()
	if len(products) == 0 {
		fatal("demo", fmt.Errorf("server has no products"))
	}
	p := products[0]
	fmt.Printf("product: %s\n", p.Name)

	sel := resolver.Selection{}.WithProduct(p.ID)
	vendors := resolver.AvailableVendors(view, sel)
	if len(vendors) == 0 {
		fatal("demo", fmt.Errorf("product %q has no vendors", p.Name))
	}
	sel = sel.WithVendor(vendors[0].ID)
	vm := resolver.Resolve(view, sel, 3)
	fmt.Printf("vendor: %s  stock: %d  total price x3: %s\n",
		vendors[0].Name, vm.Join.Stock, vm.Totals.TotalPrice)

	s := client.StockAdjustmentForm()
	s.Set(form.FieldProduct, fmt.Sprint(p.ID))
	s.Set(form.FieldVendor, fmt.Sprint(vendors[0].ID))
	s.Set(form.FieldStock, fmt.Sprint(vm.Join.Stock+5))
	errs, err := client.SubmitStockAdjustment(ctx, s)
	if err != nil {
		fatal("adjust stock", err)
	}
	if len(errs) > 0 {
		fatal("adjust stock", fmt.Errorf("validation: %v", errs))
	}

	view, err = client.Dropdown(ctx)
	if err != nil {
		fatal("refetch dropdown", err)
	}
	vp, _ := view.VendorProductFor(sel.ProductID, sel.VendorID)
	fmt.Printf("stock after adjustment: %d\n", vp.Stock)

	dash, err := client.Dashboard(ctx)
	if err != nil {
		fatal("fetch dashboard", err)
	}
	fmt.Printf("dashboard: %d products, %d vendors, %d low on stock\n",
		dash.TotalProducts, dash.TotalVendors, dash.LowStock)
}

func fatal(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
