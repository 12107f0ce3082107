// Package simulator implements an in-process inventory API server with
// an in-memory dataset. Integration tests and the standalone simulator
// binary use it in place of the real backend.
package simulator

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/inventory-admin-client/internal/model"
)

// FieldErrors mirrors the server's field-error payload: field name to a
// list of messages.
type FieldErrors map[string][]string

// ValidationError carries field errors for a rejected mutation.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ErrNotFound is returned for lookups of unknown or inactive records.
var ErrNotFound = fmt.Errorf("not found")

// recordedReturn is a return with the time it was accepted, feeding the
// dashboard's daily and monthly sales figures.
type recordedReturn struct {
	model.ProductReturn
	at time.Time
}

// Dataset is the simulator's mutable state. All methods are safe for
// concurrent use.
type Dataset struct {
	mu             sync.Mutex
	categories     map[int64]model.Category
	products       map[int64]model.Product
	vendors        map[int64]model.Vendor
	vendorProducts map[int64]model.VendorProduct
	returns        []recordedReturn
	nextID         int64
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		categories:     make(map[int64]model.Category),
		products:       make(map[int64]model.Product),
		vendors:        make(map[int64]model.Vendor),
		vendorProducts: make(map[int64]model.VendorProduct),
		nextID:         1,
	}
}

func (d *Dataset) id() int64 {
	id := d.nextID
	d.nextID++
	return id
}

// AddCategory seeds a category and returns it.
func (d *Dataset) AddCategory(name string) model.Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := model.Category{ID: d.id(), Name: name}
	d.categories[c.ID] = c
	return c
}

// AddVendor seeds a vendor and returns it.
func (d *Dataset) AddVendor(name string) model.Vendor {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := model.Vendor{ID: d.id(), Name: name, IsActive: true}
	d.vendors[v.ID] = v
	return v
}

// AddProduct seeds a product and returns it.
func (d *Dataset) AddProduct(name string, category int64) model.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := model.Product{ID: d.id(), Name: name, Category: category, IsActive: true}
	if c, ok := d.categories[category]; ok {
		p.CategoryDetail = &c
	}
	d.products[p.ID] = p
	return p
}

// AddVendorProduct seeds a join record and returns it.
func (d *Dataset) AddVendorProduct(product, vendor int64, code string, cost, price decimal.Decimal, stock int64) model.VendorProduct {
	d.mu.Lock()
	defer d.mu.Unlock()
	vp := model.VendorProduct{
		ID:         d.id(),
		Product:    product,
		Vendor:     vendor,
		VendorCode: code,
		Cost:       cost,
		Price:      price,
		Stock:      stock,
		IsActive:   true,
	}
	if v, ok := d.vendors[vendor]; ok {
		vp.VendorDetail = &v
	}
	d.vendorProducts[vp.ID] = vp
	return vp
}

// Dropdown returns the active collections as one consistent snapshot.
func (d *Dataset) Dropdown() model.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := model.Snapshot{
		Products:       []model.Product{},
		Vendors:        []model.Vendor{},
		VendorProducts: []model.VendorProduct{},
	}
	for _, id := range sortedIDs(d.products) {
		if p := d.products[id]; p.IsActive {
			snap.Products = append(snap.Products, p)
		}
	}
	for _, id := range sortedIDs(d.vendors) {
		if v := d.vendors[id]; v.IsActive {
			snap.Vendors = append(snap.Vendors, v)
		}
	}
	for _, id := range sortedIDs(d.vendorProducts) {
		if vp := d.vendorProducts[id]; vp.IsActive {
			snap.VendorProducts = append(snap.VendorProducts, vp)
		}
	}
	return snap
}

// ProductPage returns one page of active products plus categories.
func (d *Dataset) ProductPage(page, pageSize int) (model.ProductPage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var active []model.Product
	for _, id := range sortedIDs(d.products) {
		if p := d.products[id]; p.IsActive {
			active = append(active, p)
		}
	}
	total := len(active)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		return model.ProductPage{}, ErrNotFound
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	var cats []model.Category
	for _, id := range sortedIDs(d.categories) {
		cats = append(cats, d.categories[id])
	}
	return model.ProductPage{
		Meta: model.PageMeta{
			Count:       int64(total),
			CurrentPage: page,
			TotalPages:  totalPages,
		},
		Products:   active[start:end],
		Categories: cats,
	}, nil
}

// VendorProducts returns the active join records.
func (d *Dataset) VendorProducts() []model.VendorProduct {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []model.VendorProduct{}
	for _, id := range sortedIDs(d.vendorProducts) {
		if vp := d.vendorProducts[id]; vp.IsActive {
			out = append(out, vp)
		}
	}
	return out
}

// CreateProduct applies a product form: the product record plus its
// initial vendor terms.
func (d *Dataset) CreateProduct(f model.ProductForm) (model.Product, error) {
	fe := make(FieldErrors)
	if f.Name == "" {
		fe["product_name"] = append(fe["product_name"], "This field is required.")
	}
	if f.Category == 0 {
		fe["category"] = append(fe["category"], "This field is required.")
	}
	if len(fe) > 0 {
		return model.Product{}, &ValidationError{Fields: fe}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	p := model.Product{ID: d.id(), Name: f.Name, Category: f.Category, Description: f.Description, Image: f.Image, IsActive: true}
	if c, ok := d.categories[f.Category]; ok {
		p.CategoryDetail = &c
	}
	d.products[p.ID] = p
	if f.Vendor != 0 {
		vp := model.VendorProduct{
			ID:         d.id(),
			Product:    p.ID,
			Vendor:     f.Vendor,
			VendorCode: f.VendorCode,
			Cost:       f.Cost,
			Price:      f.Price,
			Stock:      f.Stock,
			IsActive:   true,
		}
		if v, ok := d.vendors[f.Vendor]; ok {
			vp.VendorDetail = &v
		}
		d.vendorProducts[vp.ID] = vp
	}
	return p, nil
}

// UpdateProduct partially updates a product; zero-valued fields are
// left untouched.
func (d *Dataset) UpdateProduct(id int64, f model.ProductForm) (model.Product, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.products[id]
	if !ok || !p.IsActive {
		return model.Product{}, ErrNotFound
	}
	if f.Name != "" {
		p.Name = f.Name
	}
	if f.Category != 0 {
		p.Category = f.Category
		if c, ok := d.categories[f.Category]; ok {
			p.CategoryDetail = &c
		}
	}
	if f.Description != "" {
		p.Description = f.Description
	}
	if f.Image != "" {
		p.Image = f.Image
	}
	d.products[id] = p
	return p, nil
}

// ToggleProduct flips a product's active flag (soft delete/restore).
// Reports whether the product is active afterwards.
func (d *Dataset) ToggleProduct(id int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.products[id]
	if !ok {
		return false, ErrNotFound
	}
	p.IsActive = !p.IsActive
	d.products[id] = p
	return p.IsActive, nil
}

// CreateVendorProduct validates and applies new vendor terms.
func (d *Dataset) CreateVendorProduct(f model.VendorProductForm) (model.VendorProduct, error) {
	fe := make(FieldErrors)
	if f.Product == 0 {
		fe["product"] = append(fe["product"], "This field is required.")
	}
	if f.Vendor == 0 {
		fe["vendor"] = append(fe["vendor"], "This field is required.")
	}
	if f.VendorCode == "" {
		fe["vendor_code"] = append(fe["vendor_code"], "This field is required.")
	}
	if len(fe) > 0 {
		return model.VendorProduct{}, &ValidationError{Fields: fe}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.products[f.Product]; !ok {
		return model.VendorProduct{}, ErrNotFound
	}
	vp := model.VendorProduct{
		ID:         d.id(),
		Product:    f.Product,
		Vendor:     f.Vendor,
		VendorCode: f.VendorCode,
		Cost:       f.Cost,
		Price:      f.Price,
		Stock:      f.Stock,
		IsActive:   true,
	}
	if v, ok := d.vendors[f.Vendor]; ok {
		vp.VendorDetail = &v
	}
	d.vendorProducts[vp.ID] = vp
	return vp, nil
}

// AdjustStock sets the stock count of one join record.
func (d *Dataset) AdjustStock(id, stock int64) error {
	if stock <= 0 {
		return &ValidationError{Fields: FieldErrors{
			"stock": {"Stock should be greater than zero."},
		}}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	vp, ok := d.vendorProducts[id]
	if !ok || !vp.IsActive {
		return ErrNotFound
	}
	vp.Stock = stock
	d.vendorProducts[id] = vp
	return nil
}

// ApplyReturn validates and records a product return. Both return types
// pull the returned quantity out of the join record's stock.
func (d *Dataset) ApplyReturn(ret model.ProductReturn) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	vp, ok := d.vendorProducts[ret.VendorProduct]
	if !ok || !vp.IsActive {
		return ErrNotFound
	}
	fe := make(FieldErrors)
	if ret.ReturnQty <= 0 {
		fe["return_qty"] = append(fe["return_qty"], "Return quantity must be greater than zero.")
	} else if ret.ReturnQty > vp.Stock {
		fe["return_qty"] = append(fe["return_qty"], "Return quantity cannot be greater than stock count.")
	}
	if ret.ReturnType == model.ReturnTypeSold && ret.BillNumber == "" {
		fe["bill_number"] = append(fe["bill_number"], "Bill number is required for sold returns.")
	}
	if len(fe) > 0 {
		return &ValidationError{Fields: fe}
	}
	vp.Stock -= ret.ReturnQty
	d.vendorProducts[vp.ID] = vp
	d.returns = append(d.returns, recordedReturn{ProductReturn: ret, at: time.Now()})
	return nil
}

// Dashboard computes the dashboard projection from the current state.
func (d *Dataset) Dashboard(lowStockLimit int64) model.DashboardData {
	d.mu.Lock()
	defer d.mu.Unlock()
	data := model.DashboardData{
		LowStockProducts: []model.LowStockProduct{},
		MonthlySales:     []model.MonthlySales{},
	}
	for _, p := range d.products {
		if p.IsActive {
			data.TotalProducts++
		}
	}
	for _, v := range d.vendors {
		if v.IsActive {
			data.TotalVendors++
		}
	}
	for _, id := range sortedIDs(d.vendorProducts) {
		vp := d.vendorProducts[id]
		if !vp.IsActive || vp.Stock >= lowStockLimit {
			continue
		}
		data.LowStock++
		row := model.LowStockProduct{
			VendorID:  vp.Vendor,
			ProductID: vp.Product,
			Stock:     vp.Stock,
		}
		if v, ok := d.vendors[vp.Vendor]; ok {
			row.VendorName = v.Name
		}
		if p, ok := d.products[vp.Product]; ok {
			row.ProductName = p.Name
		}
		data.LowStockProducts = append(data.LowStockProducts, row)
	}

	// sales figures derive from recorded sold returns, the simulator's
	// only sales signal
	now := time.Now()
	monthly := make(map[string]decimal.Decimal)
	for _, rec := range d.returns {
		if rec.ReturnType != model.ReturnTypeSold {
			continue
		}
		vp, ok := d.vendorProducts[rec.VendorProduct]
		if !ok {
			continue
		}
		revenue := vp.Price.Mul(decimalFromInt(rec.ReturnQty))
		data.TotalBills++
		if sameDay(rec.at, now) {
			data.TotalSalesToday = data.TotalSalesToday.Add(revenue)
		}
		if sameMonth(rec.at, now) {
			data.MonthlyRevenue = data.MonthlyRevenue.Add(revenue)
		}
		key := rec.at.Format("2006-01")
		monthly[key] = monthly[key].Add(revenue)
	}
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	slices.Sort(months)
	for _, m := range months {
		data.MonthlySales = append(data.MonthlySales, model.MonthlySales{Month: m, TotalSales: monthly[m]})
	}
	return data
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SalesAnalysis computes the per-product projection. Sales figures come
// from recorded sold returns only, which is enough for the simulator.
func (d *Dataset) SalesAnalysis(productID int64) (model.SalesAnalysis, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.products[productID]; !ok {
		return model.SalesAnalysis{}, ErrNotFound
	}
	out := model.SalesAnalysis{ProductID: productID}
	now := time.Now()
	for _, rec := range d.returns {
		vp, ok := d.vendorProducts[rec.VendorProduct]
		if !ok || vp.Product != productID || rec.ReturnType != model.ReturnTypeSold {
			continue
		}
		out.TotalSales += rec.ReturnQty
		out.TotalRevenue = out.TotalRevenue.Add(vp.Price.Mul(decimalFromInt(rec.ReturnQty)))
		if sameMonth(rec.at, now) {
			out.ThisMonthSales += rec.ReturnQty
		}
		if now.Sub(rec.at) <= 48*time.Hour {
			out.Last2DaySales += rec.ReturnQty
		}
	}
	return out, nil
}

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
