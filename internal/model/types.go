// Package model defines domain types mirroring the inventory API wire format.
package model

import "github.com/shopspring/decimal"

// Category is a product category reference.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Vendor represents a supplier of one or more products.
type Vendor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Product represents a catalog product. The server owns it; clients hold
// a read-only cached copy.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"product_name"`
	Description    string    `json:"description,omitempty"`
	Category       int64     `json:"category"`
	CategoryDetail *Category `json:"category_detail,omitempty"`
	IsActive       bool      `json:"is_active"`
	Image          string    `json:"image,omitempty"`
}

// VendorProduct is the join record carrying one vendor's terms for one
// product. At most one active record per (product, vendor) pair is
// assumed when resolving; uniqueness is enforced server side.
type VendorProduct struct {
	ID           int64           `json:"id"`
	Product      int64           `json:"product"`
	Vendor       int64           `json:"vendor"`
	VendorCode   string          `json:"vendor_code"`
	VendorDetail *Vendor         `json:"vendor_detail,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
	IsActive     bool            `json:"is_active"`
}

// Snapshot is the dropdown dataset: the three collections the resolver
// works against, fetched together so they are mutually consistent.
type Snapshot struct {
	Products       []Product       `json:"products"`
	Vendors        []Vendor        `json:"vendors"`
	VendorProducts []VendorProduct `json:"vendor_products"`
}

// PageMeta carries pagination metadata for the product list.
type PageMeta struct {
	Count       int64  `json:"count"`
	CurrentPage int    `json:"current_page"`
	Next        string `json:"next,omitempty"`
	Previous    string `json:"previous,omitempty"`
	TotalPages  int    `json:"total_pages"`
}

// ProductPage is one page of products plus the active category list.
type ProductPage struct {
	Meta       PageMeta   `json:"meta"`
	Products   []Product  `json:"results"`
	Categories []Category `json:"categories"`
}

// LowStockProduct is a dashboard row for a vendor product running low.
type LowStockProduct struct {
	VendorID    int64  `json:"vendor__id"`
	VendorName  string `json:"vendor__name"`
	ProductID   int64  `json:"product__id"`
	ProductName string `json:"product__product_name"`
	Stock       int64  `json:"stock"`
}

// MonthlySales is one month's aggregate sales figure.
type MonthlySales struct {
	Month      string          `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// DashboardData is the read-only dashboard projection.
type DashboardData struct {
	TotalProducts    int64             `json:"total_products"`
	LowStock         int64             `json:"low_stock"`
	TotalVendors     int64             `json:"total_vendors"`
	TotalSalesToday  decimal.Decimal   `json:"total_sales_today"`
	TotalBills       int64             `json:"total_bills"`
	MonthlyRevenue   decimal.Decimal   `json:"monthly_revenue"`
	LowStockProducts []LowStockProduct `json:"low_stock_products"`
	MonthlySales     []MonthlySales    `json:"monthly_sales"`
}

// SalesAnalysis is the per-product sales projection.
type SalesAnalysis struct {
	ProductID      int64           `json:"productId"`
	TotalSales     int64           `json:"total_sales"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ThisMonthSales int64           `json:"this_month_sales"`
	Last2DaySales  int64           `json:"last_2day_sales"`
}

// Return type discriminator values.
const (
	ReturnTypeSold    = 1
	ReturnTypeNotSold = 2
)

// ProductReturn is the payload for a product return mutation.
type ProductReturn struct {
	VendorProduct int64           `json:"vendor_product"`
	ReturnQty     int64           `json:"return_qty"`
	ReturnType    int             `json:"return_type"`
	Reason        string          `json:"reason"`
	BillNumber    string          `json:"bill_number,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	Notes         string          `json:"notes,omitempty"`
}

// StockAdjustment is the payload for a vendor-product stock mutation.
type StockAdjustment struct {
	ID    int64 `json:"id"`
	Stock int64 `json:"stock"`
}

// VendorProductForm is the payload for creating a vendor-product record.
type VendorProductForm struct {
	Product    int64           `json:"product"`
	Vendor     int64           `json:"vendor"`
	VendorCode string          `json:"vendor_code"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
}

// ProductForm is the payload for creating or updating a product together
// with its initial vendor terms.
type ProductForm struct {
	Name        string          `json:"product_name"`
	Category    int64           `json:"category"`
	Vendor      int64           `json:"vendor"`
	VendorCode  string          `json:"vendor_code"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}
