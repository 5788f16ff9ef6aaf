package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one billed line on an invoice.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// Record is the canonical invoice schema shared by extraction producers,
// the reconciliation engine, and the validation engine.
//
// Every field is optional: an absent field is legal input, not an error.
// Dates are kept as raw strings because producers disagree on formats;
// parsing happens at comparison/validation time, and an unparsable value
// is treated as absent for the rule that needed it. Monetary amounts are
// fixed-point decimals to keep tolerance comparisons free of float drift.
type Record struct {
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	VendorName    *string          `json:"vendor_name,omitempty"`
	BuyerName     *string          `json:"buyer_name,omitempty"`
	VendorAddress *string          `json:"vendor_address,omitempty"`
	BuyerAddress  *string          `json:"buyer_address,omitempty"`
	InvoiceDate   *string          `json:"invoice_date,omitempty"`
	DueDate       *string          `json:"due_date,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	TaxAmount     *decimal.Decimal `json:"tax_amount,omitempty"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	PaymentTerms  *string          `json:"payment_terms,omitempty"`
	LineItems     []LineItem       `json:"line_items,omitempty"`
}

// Field identifies one comparable field of the canonical record.
type Field string

const (
	FieldInvoiceNumber Field = "invoice_number"
	FieldVendorName    Field = "vendor_name"
	FieldBuyerName     Field = "buyer_name"
	FieldVendorAddress Field = "vendor_address"
	FieldBuyerAddress  Field = "buyer_address"
	FieldInvoiceDate   Field = "invoice_date"
	FieldDueDate       Field = "due_date"
	FieldCurrency      Field = "currency"
	FieldSubtotal      Field = "subtotal"
	FieldTaxAmount     Field = "tax_amount"
	FieldTotalAmount   Field = "total_amount"
	FieldPaymentTerms  Field = "payment_terms"
	FieldLineItems     Field = "line_items"
)

// Fields lists every comparable field in merge order. The order is fixed so
// comparison trails and mismatch lists are reproducible across runs.
var Fields = []Field{
	FieldInvoiceNumber,
	FieldVendorName,
	FieldVendorAddress,
	FieldBuyerName,
	FieldBuyerAddress,
	FieldInvoiceDate,
	FieldDueDate,
	FieldCurrency,
	FieldSubtotal,
	FieldTaxAmount,
	FieldTotalAmount,
	FieldPaymentTerms,
	FieldLineItems,
}

// Kind is the semantic comparison type of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDate
	KindLineItems
)

// KindOf returns the semantic type used when comparing a field.
func KindOf(f Field) Kind {
	switch f {
	case FieldSubtotal, FieldTaxAmount, FieldTotalAmount:
		return KindNumeric
	case FieldInvoiceDate, FieldDueDate:
		return KindDate
	case FieldLineItems:
		return KindLineItems
	default:
		return KindText
	}
}

// TextValue returns the string value of a text-kind field, or nil.
func (r *Record) TextValue(f Field) *string {
	switch f {
	case FieldInvoiceNumber:
		return r.InvoiceNumber
	case FieldVendorName:
		return r.VendorName
	case FieldBuyerName:
		return r.BuyerName
	case FieldVendorAddress:
		return r.VendorAddress
	case FieldBuyerAddress:
		return r.BuyerAddress
	case FieldInvoiceDate:
		return r.InvoiceDate
	case FieldDueDate:
		return r.DueDate
	case FieldCurrency:
		return r.Currency
	case FieldPaymentTerms:
		return r.PaymentTerms
	default:
		return nil
	}
}

// NumericValue returns the decimal value of a numeric-kind field, or nil.
func (r *Record) NumericValue(f Field) *decimal.Decimal {
	switch f {
	case FieldSubtotal:
		return r.Subtotal
	case FieldTaxAmount:
		return r.TaxAmount
	case FieldTotalAmount:
		return r.TotalAmount
	default:
		return nil
	}
}

// SetText assigns a text-kind field. Nil clears it.
func (r *Record) SetText(f Field, v *string) {
	switch f {
	case FieldInvoiceNumber:
		r.InvoiceNumber = v
	case FieldVendorName:
		r.VendorName = v
	case FieldBuyerName:
		r.BuyerName = v
	case FieldVendorAddress:
		r.VendorAddress = v
	case FieldBuyerAddress:
		r.BuyerAddress = v
	case FieldInvoiceDate:
		r.InvoiceDate = v
	case FieldDueDate:
		r.DueDate = v
	case FieldCurrency:
		r.Currency = v
	case FieldPaymentTerms:
		r.PaymentTerms = v
	}
}

// SetNumeric assigns a numeric-kind field. Nil clears it.
func (r *Record) SetNumeric(f Field, v *decimal.Decimal) {
	switch f {
	case FieldSubtotal:
		r.Subtotal = v
	case FieldTaxAmount:
		r.TaxAmount = v
	case FieldTotalAmount:
		r.TotalAmount = v
	}
}

// HasField reports whether the field carries a meaningful value.
// Empty and whitespace-only strings and empty line-item lists count as absent.
func (r *Record) HasField(f Field) bool {
	switch KindOf(f) {
	case KindNumeric:
		return r.NumericValue(f) != nil
	case KindLineItems:
		return len(r.LineItems) > 0
	default:
		v := r.TextValue(f)
		return v != nil && !isBlank(*v)
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
