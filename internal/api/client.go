package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/inventory-admin-client/internal/config"
	"github.com/fairyhunter13/inventory-admin-client/internal/model"
	"github.com/fairyhunter13/inventory-admin-client/internal/obs"
)

// Client talks to the inventory REST API. It performs single attempts
// only; retry policy belongs to an outer layer.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New constructs a Client from configuration.
func New(cfg config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// do issues one request, unwraps the response envelope and decodes its
// data into out (when non-nil). Envelope failures and non-2xx statuses
// become *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if derr := json.NewDecoder(resp.Body).Decode(&env); derr != nil {
		if resp.StatusCode >= 300 {
			return &Error{Status: resp.StatusCode, Message: resp.Status}
		}
		return fmt.Errorf("decode response: %w", derr)
	}
	if resp.StatusCode >= 300 || !env.Success {
		obs.Logger.Warn("api_error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"request_id", reqID,
		)
		return &Error{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	if out != nil && len(env.Data) > 0 {
		if derr := json.Unmarshal(env.Data, out); derr != nil {
			return fmt.Errorf("decode data: %w", derr)
		}
	}
	return nil
}

// DropdownData fetches the mutually consistent products, vendors and
// vendor-products collections used by the dependent dropdowns.
func (c *Client) DropdownData(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	err := c.do(ctx, http.MethodGet, "/products/get_dropdown_data/", nil, &snap)
	return snap, err
}

// productListData is the wire layout of the paginated product list.
type productListData struct {
	Products struct {
		Count       int64           `json:"count"`
		Next        string          `json:"next"`
		Previous    string          `json:"previous"`
		Results     []model.Product `json:"results"`
		CurrentPage int             `json:"current_page"`
		TotalPages  int             `json:"total_pages"`
	} `json:"products"`
	Categories []model.Category `json:"categories"`
}

// Products fetches one page of the product list with its categories.
func (c *Client) Products(ctx context.Context, page int) (model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	var data productListData
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/?page=%d", page), nil, &data)
	if err != nil {
		return model.ProductPage{}, err
	}
	return model.ProductPage{
		Meta: model.PageMeta{
			Count:       data.Products.Count,
			CurrentPage: data.Products.CurrentPage,
			Next:        data.Products.Next,
			Previous:    data.Products.Previous,
			TotalPages:  data.Products.TotalPages,
		},
		Products:   data.Products.Results,
		Categories: data.Categories,
	}, nil
}

// VendorProducts fetches the full vendor-product list.
func (c *Client) VendorProducts(ctx context.Context) ([]model.VendorProduct, error) {
	var data struct {
		VendorProducts []model.VendorProduct `json:"vendor_products"`
	}
	err := c.do(ctx, http.MethodGet, "/products/vendor_products/", nil, &data)
	return data.VendorProducts, err
}

// Dashboard fetches the dashboard projection.
func (c *Client) Dashboard(ctx context.Context) (model.DashboardData, error) {
	var data model.DashboardData
	err := c.do(ctx, http.MethodGet, "/dashboard/", nil, &data)
	return data, err
}

// SalesAnalysis fetches the per-product sales projection.
func (c *Client) SalesAnalysis(ctx context.Context, productID int64) (model.SalesAnalysis, error) {
	var data model.SalesAnalysis
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/sales-analysis/", productID), nil, &data)
	return data, err
}

// CreateProduct creates a product with its initial vendor terms.
func (c *Client) CreateProduct(ctx context.Context, f model.ProductForm) (model.Product, error) {
	var p model.Product
	err := c.do(ctx, http.MethodPost, "/products/", f, &p)
	return p, err
}

// UpdateProduct partially updates a product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, f model.ProductForm) (model.Product, error) {
	var p model.Product
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/", id), f, &p)
	return p, err
}

// DeleteProduct toggles a product's active flag off (soft delete).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil)
}

// CreateVendorProduct adds one vendor's terms for a product.
func (c *Client) CreateVendorProduct(ctx context.Context, f model.VendorProductForm) (model.VendorProduct, error) {
	var vp model.VendorProduct
	err := c.do(ctx, http.MethodPost, "/products/vendor_products/", f, &vp)
	return vp, err
}

// AdjustStock sets the stock count of one vendor-product record.
func (c *Client) AdjustStock(ctx context.Context, adj model.StockAdjustment) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/vendor_products/%d/", adj.ID), adj, nil)
}

// SubmitReturn records a product return.
func (c *Client) SubmitReturn(ctx context.Context, ret model.ProductReturn) error {
	return c.do(ctx, http.MethodPost, "/returns/", ret, nil)
}
