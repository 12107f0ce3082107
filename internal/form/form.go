// Package form owns per-modal transient state: field values, submit-time
// validation and the per-field error map consumed by the presentation
// layer.
package form

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/inventory-admin-client/internal/resolver"
	"github.com/fairyhunter13/inventory-admin-client/internal/store"
)

// Code classifies a validation failure.
type Code string

// Validation failure codes.
const (
	CodeMissingField        Code = "MissingField"
	CodeInvalidRange        Code = "InvalidRange"
	CodeConditionalRequired Code = "ConditionalRequired"
)

// FieldError is one field's validation failure.
type FieldError struct {
	Code    Code
	Message string
}

// Errors maps field name to its validation failure. Submission proceeds
// only when the map is empty.
type Errors map[string]FieldError

// Common field names shared by the forms.
const (
	FieldProduct  = "product"
	FieldVendor   = "vendor"
	FieldStock    = "stock"
	FieldQuantity = "quantity"
)

// Rule checks one field of a session at submit time.
type Rule struct {
	Field string
	Check func(s *Session) *FieldError
}

// Required fails with MissingField when the field is empty or unset.
func Required(field, label string) Rule {
	return Rule{Field: field, Check: func(s *Session) *FieldError {
		if s.Value(field) == "" {
			return &FieldError{Code: CodeMissingField, Message: label + " is required"}
		}
		return nil
	}}
}

// Positive fails with InvalidRange unless the field parses as a number
// greater than zero.
func Positive(field, label string) Rule {
	return Rule{Field: field, Check: func(s *Session) *FieldError {
		n, err := decimal.NewFromString(s.Value(field))
		if err != nil || !n.IsPositive() {
			return &FieldError{Code: CodeInvalidRange, Message: label + " should be greater than zero"}
		}
		return nil
	}}
}

// RequiredIf fails with ConditionalRequired when the discriminator field
// equals the given value and this field is empty. The condition is
// evaluated at submit time only.
func RequiredIf(field, label, discriminator, equals string) Rule {
	return Rule{Field: field, Check: func(s *Session) *FieldError {
		if s.Value(discriminator) == equals && s.Value(field) == "" {
			return &FieldError{
				Code:    CodeConditionalRequired,
				Message: fmt.Sprintf("%s is required for this %s", label, discriminator),
			}
		}
		return nil
	}}
}

// Session is the transient state of one in-flight create/update
// operation. Field values are held as strings the way form inputs carry
// them; typed accessors parse on demand.
type Session struct {
	view     func() *store.View
	rules    []Rule
	qtyField string

	values map[string]string
	errors Errors
	sel    resolver.Selection
}

// NewSession creates a session resolving against the given view provider.
// qtyField names the field feeding derived totals (empty for forms with
// no quantity input).
func NewSession(view func() *store.View, qtyField string, rules ...Rule) *Session {
	return &Session{
		view:     view,
		rules:    rules,
		qtyField: qtyField,
		values:   make(map[string]string),
		errors:   make(Errors),
	}
}

// Set records a field change. The field's own error is cleared the
// moment it changes (optimistic clearing, not re-validation). Changing
// the product to a different one clears the vendor choice; re-setting
// the current product keeps it, matching Selection.WithProduct.
func (s *Session) Set(field, value string) {
	s.values[field] = value
	delete(s.errors, field)
	switch field {
	case FieldProduct:
		if parseID(value) != s.sel.ProductID {
			s.values[FieldVendor] = ""
		}
		s.sel = s.sel.WithProduct(parseID(value))
	case FieldVendor:
		s.sel = s.sel.WithVendor(parseID(value))
	}
}

// Value returns the raw string value of a field.
func (s *Session) Value(field string) string { return s.values[field] }

// Int returns the field parsed as an integer, zero when absent or
// malformed.
func (s *Session) Int(field string) int64 {
	n, _ := strconv.ParseInt(s.values[field], 10, 64)
	return n
}

// Decimal returns the field parsed as a decimal, zero when absent or
// malformed.
func (s *Session) Decimal(field string) decimal.Decimal {
	d, err := decimal.NewFromString(s.values[field])
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Selection returns the current dependent selection.
func (s *Session) Selection() resolver.Selection { return s.sel }

// Errors returns the error map from the last Validate call.
func (s *Session) Errors() Errors { return s.errors }

// Validate runs every rule, accumulates failures into the error map and
// returns it. All rules run; errors are collected, never thrown.
func (s *Session) Validate() Errors {
	errs := make(Errors)
	for _, r := range s.rules {
		if ferr := r.Check(s); ferr != nil {
			if _, dup := errs[r.Field]; !dup {
				errs[r.Field] = *ferr
			}
		}
	}
	s.errors = errs
	return errs
}

// CanSubmit reports whether the last validation pass found no errors.
func (s *Session) CanSubmit() bool { return len(s.errors) == 0 }

// Reset clears all field values, errors and the selection.
func (s *Session) Reset() {
	s.values = make(map[string]string)
	s.errors = make(Errors)
	s.sel = resolver.Selection{}
}

// ViewModel resolves the session against the current snapshot view:
// available vendors, the resolved join record, derived totals for the
// quantity field, and the validation errors.
type ViewModel struct {
	resolver.ViewModel
	Errors Errors
}

// ViewModel returns the resolved output for the presentation layer. It
// recomputes from the live view on every call and retains nothing.
func (s *Session) ViewModel() ViewModel {
	qty := int64(0)
	if s.qtyField != "" {
		qty = s.Int(s.qtyField)
	}
	return ViewModel{
		ViewModel: resolver.Resolve(s.view(), s.sel, qty),
		Errors:    s.errors,
	}
}

func parseID(v string) int64 {
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
