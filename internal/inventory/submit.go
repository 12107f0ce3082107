package inventory

import (
	"context"
	"strconv"

	"github.com/fairyhunter13/inventory-admin-client/internal/form"
	"github.com/fairyhunter13/inventory-admin-client/internal/model"
)

// SubmitStockAdjustment validates the session and, when clean, submits
// the stock mutation against the resolved join record. A non-empty error
// map blocks submission; a transport failure is returned as the error.
func (c *Client) SubmitStockAdjustment(ctx context.Context, s *form.Session) (form.Errors, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return errs, nil
	}
	vm := s.ViewModel()
	err := c.AdjustStock(ctx, model.StockAdjustment{
		ID:    vm.Join.ID,
		Stock: s.Int(form.FieldStock),
	})
	if err != nil {
		return nil, err
	}
	s.Reset()
	return nil, nil
}

// SubmitProductReturn validates and submits a product return.
func (c *Client) SubmitProductReturn(ctx context.Context, s *form.Session) (form.Errors, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return errs, nil
	}
	vm := s.ViewModel()
	returnType, _ := strconv.Atoi(s.Value(form.FieldReturnType))
	err := c.SubmitReturn(ctx, model.ProductReturn{
		VendorProduct: vm.Join.ID,
		ReturnQty:     s.Int(form.FieldQuantity),
		ReturnType:    returnType,
		Reason:        s.Value(form.FieldReason),
		BillNumber:    s.Value(form.FieldBillNumber),
		CustomerName:  s.Value(form.FieldCustomerName),
		RefundAmount:  s.Decimal(form.FieldRefundAmount),
		Notes:         s.Value(form.FieldNotes),
	})
	if err != nil {
		return nil, err
	}
	s.Reset()
	return nil, nil
}

// SubmitVendorProduct validates and submits new vendor terms.
func (c *Client) SubmitVendorProduct(ctx context.Context, s *form.Session) (form.Errors, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return errs, nil
	}
	err := c.CreateVendorProduct(ctx, model.VendorProductForm{
		Product:    s.Int(form.FieldProduct),
		Vendor:     s.Int(form.FieldVendor),
		VendorCode: s.Value(form.FieldVendorCode),
		Cost:       s.Decimal(form.FieldCost),
		Price:      s.Decimal(form.FieldPrice),
		Stock:      s.Int(form.FieldStock),
	})
	if err != nil {
		return nil, err
	}
	s.Reset()
	return nil, nil
}

// SubmitProduct validates and submits a product create.
func (c *Client) SubmitProduct(ctx context.Context, s *form.Session) (form.Errors, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return errs, nil
	}
	err := c.CreateProduct(ctx, model.ProductForm{
		Name:        s.Value(form.FieldProductName),
		Category:    s.Int(form.FieldCategory),
		Vendor:      s.Int(form.FieldVendor),
		VendorCode:  s.Value(form.FieldVendorCode),
		Cost:        s.Decimal(form.FieldCost),
		Price:       s.Decimal(form.FieldPrice),
		Stock:       s.Int(form.FieldStock),
		Description: s.Value(form.FieldDescription),
		Image:       s.Value(form.FieldImage),
	})
	if err != nil {
		return nil, err
	}
	s.Reset()
	return nil, nil
}
