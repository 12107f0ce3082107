package api

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/inventory-admin-client/internal/cache"
	"github.com/fairyhunter13/inventory-admin-client/internal/model"
)

// Fetch implements cache.Fetcher by dispatching a resource tag to the
// matching endpoint. The product list tag fetches the first page; deeper
// pages are fetched directly via Products.
func (c *Client) Fetch(ctx context.Context, tag cache.Tag) (any, error) {
	switch tag {
	case cache.TagDropdown:
		return c.DropdownData(ctx)
	case cache.TagProductList:
		return c.Products(ctx, 1)
	case cache.TagVendorList:
		return c.VendorProducts(ctx)
	case cache.TagDashboard:
		return c.Dashboard(ctx)
	default:
		return nil, fmt.Errorf("api: unknown resource tag %q", tag)
	}
}

// Mutate implements cache.Mutator by dispatching a mutation kind to the
// matching endpoint. Payload types follow the model package.
func (c *Client) Mutate(ctx context.Context, kind cache.MutationKind, payload any) (any, error) {
	switch kind {
	case cache.MutationProductCreate:
		f, err := payloadAs[model.ProductForm](kind, payload)
		if err != nil {
			return nil, err
		}
		return c.CreateProduct(ctx, f)
	case cache.MutationProductUpdate:
		u, err := payloadAs[ProductUpdate](kind, payload)
		if err != nil {
			return nil, err
		}
		return c.UpdateProduct(ctx, u.ID, u.Form)
	case cache.MutationProductDelete:
		id, err := payloadAs[int64](kind, payload)
		if err != nil {
			return nil, err
		}
		return nil, c.DeleteProduct(ctx, id)
	case cache.MutationVendorProductCreate:
		f, err := payloadAs[model.VendorProductForm](kind, payload)
		if err != nil {
			return nil, err
		}
		return c.CreateVendorProduct(ctx, f)
	case cache.MutationStockAdjust:
		adj, err := payloadAs[model.StockAdjustment](kind, payload)
		if err != nil {
			return nil, err
		}
		return nil, c.AdjustStock(ctx, adj)
	case cache.MutationProductReturn:
		ret, err := payloadAs[model.ProductReturn](kind, payload)
		if err != nil {
			return nil, err
		}
		return nil, c.SubmitReturn(ctx, ret)
	default:
		return nil, fmt.Errorf("api: unknown mutation kind %q", kind)
	}
}

// ProductUpdate pairs a product id with its partial update form.
type ProductUpdate struct {
	ID   int64
	Form model.ProductForm
}

func payloadAs[T any](kind cache.MutationKind, payload any) (T, error) {
	v, ok := payload.(T)
	if !ok {
		return v, fmt.Errorf("api: mutation %q: unexpected payload type %T", kind, payload)
	}
	return v, nil
}
