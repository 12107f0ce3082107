// Package inventory wires the transport, tag cache, entity store and
// form sessions into the client surface the presentation layer consumes.
package inventory

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/inventory-admin-client/internal/api"
	"github.com/fairyhunter13/inventory-admin-client/internal/cache"
	"github.com/fairyhunter13/inventory-admin-client/internal/form"
	"github.com/fairyhunter13/inventory-admin-client/internal/model"
	"github.com/fairyhunter13/inventory-admin-client/internal/store"
)

// Client is the application-facing facade. All reads go through the tag
// cache; all writes go through the mutation path so invalidation is
// never skipped.
type Client struct {
	api   *api.Client
	cache *cache.Client
	store *store.Store
}

// New wires a facade around the given transport. Accepted dropdown
// fetches are loaded into the entity store in fetch order; superseded
// responses never regress it.
func New(apiClient *api.Client) *Client {
	st := store.New()
	cc := cache.New(apiClient, apiClient, cache.NewGraph())
	cc.OnApply(cache.TagDropdown, func(seq uint64, v any) {
		if snap, ok := v.(model.Snapshot); ok {
			st.LoadIfNewer(snap, seq)
		}
	})
	return &Client{api: apiClient, cache: cc, store: st}
}

// Cache exposes the underlying tag cache.
func (c *Client) Cache() *cache.Client { return c.cache }

// View returns the current entity store view without fetching.
func (c *Client) View() *store.View { return c.store.View() }

// Dropdown ensures the dropdown snapshot is fresh and returns the
// resulting store view. On transport failure the last loaded view stays
// visible and is returned alongside the error.
func (c *Client) Dropdown(ctx context.Context) (*store.View, error) {
	_, err := c.cache.Get(ctx, cache.TagDropdown)
	return c.store.View(), err
}

// Products returns the cached first page of the product list.
func (c *Client) Products(ctx context.Context) (model.ProductPage, error) {
	return getAs[model.ProductPage](ctx, c.cache, cache.TagProductList)
}

// VendorProducts returns the cached vendor-product list.
func (c *Client) VendorProducts(ctx context.Context) ([]model.VendorProduct, error) {
	return getAs[[]model.VendorProduct](ctx, c.cache, cache.TagVendorList)
}

// Dashboard returns the cached dashboard projection.
func (c *Client) Dashboard(ctx context.Context) (model.DashboardData, error) {
	return getAs[model.DashboardData](ctx, c.cache, cache.TagDashboard)
}

// SalesAnalysis fetches the per-product sales projection. It is not
// cached: the modal showing it refetches on open.
func (c *Client) SalesAnalysis(ctx context.Context, productID int64) (model.SalesAnalysis, error) {
	return c.api.SalesAnalysis(ctx, productID)
}

// CreateProduct submits a new product and invalidates dependent views.
func (c *Client) CreateProduct(ctx context.Context, f model.ProductForm) error {
	_, err := c.cache.Mutate(ctx, cache.MutationProductCreate, f)
	return err
}

// UpdateProduct submits a partial product update.
func (c *Client) UpdateProduct(ctx context.Context, id int64, f model.ProductForm) error {
	_, err := c.cache.Mutate(ctx, cache.MutationProductUpdate, api.ProductUpdate{ID: id, Form: f})
	return err
}

// DeleteProduct soft-deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.cache.Mutate(ctx, cache.MutationProductDelete, id)
	return err
}

// CreateVendorProduct adds vendor terms for a product.
func (c *Client) CreateVendorProduct(ctx context.Context, f model.VendorProductForm) error {
	_, err := c.cache.Mutate(ctx, cache.MutationVendorProductCreate, f)
	return err
}

// AdjustStock sets the stock of one vendor-product record.
func (c *Client) AdjustStock(ctx context.Context, adj model.StockAdjustment) error {
	_, err := c.cache.Mutate(ctx, cache.MutationStockAdjust, adj)
	return err
}

// SubmitReturn records a product return.
func (c *Client) SubmitReturn(ctx context.Context, ret model.ProductReturn) error {
	_, err := c.cache.Mutate(ctx, cache.MutationProductReturn, ret)
	return err
}

// StockAdjustmentForm opens a stock adjustment session resolving against
// the live store view.
func (c *Client) StockAdjustmentForm() *form.Session {
	return form.NewStockAdjustment(c.store.View)
}

// ProductReturnForm opens a product return session.
func (c *Client) ProductReturnForm() *form.Session {
	return form.NewProductReturn(c.store.View)
}

// VendorProductForm opens a session adding vendor terms to a product.
func (c *Client) VendorProductForm() *form.Session {
	return form.NewVendorProduct(c.store.View)
}

// ProductForm opens a create/edit product session.
func (c *Client) ProductForm() *form.Session {
	return form.NewProduct(c.store.View)
}

func getAs[T any](ctx context.Context, cc *cache.Client, tag cache.Tag) (T, error) {
	var zero T
	v, err := cc.Get(ctx, tag)
	if v == nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("inventory: tag %q: unexpected cached type %T", tag, v)
	}
	return out, err
}
