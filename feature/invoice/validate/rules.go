package validate

import (
	"fmt"
	"time"

	"invoicely/feature/invoice/compare"
	"invoicely/feature/invoice/models"

	"github.com/shopspring/decimal"
)

// amountTolerance is the absolute tolerance for amount consistency checks:
// one hundredth of the currency's minor unit.
var amountTolerance = decimal.RequireFromString("0.01")

// Anomaly thresholds for the two-tier total amount check. Both deductions
// apply when both thresholds are crossed.
var (
	highAmount     = decimal.NewFromInt(1_000_000)
	veryHighAmount = decimal.NewFromInt(10_000_000)
)

// commonCurrencies is the whitelist of expected ISO currency codes.
var commonCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "INR": {}, "CAD": {}, "AUD": {}, "JPY": {},
}

// DefaultRules builds the standard rule battery. The returned slice is
// ordered by category and, within a category, by declaration order; the
// engine evaluates it exactly in this order so reports are reproducible.
func DefaultRules() []Rule {
	rules := make([]Rule, 0, 24)

	// Completeness: the four required fields, then the important ones.
	required := []struct {
		field models.Field
		label string
	}{
		{models.FieldInvoiceNumber, "Invoice Number"},
		{models.FieldVendorName, "Vendor Name"},
		{models.FieldTotalAmount, "Total Amount"},
		{models.FieldInvoiceDate, "Invoice Date"},
	}
	for _, rf := range required {
		field, label := rf.field, rf.label
		rules = append(rules, Rule{
			Name:      "required_" + string(field),
			Category:  CategoryCompleteness,
			Severity:  SeverityError,
			Deduction: 15,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.HasField(field) {
					return false, ""
				}
				return true, fmt.Sprintf("Missing required field: %s", label)
			},
		})
	}

	important := []struct {
		field models.Field
		label string
	}{
		{models.FieldBuyerName, "Buyer Name"},
		{models.FieldCurrency, "Currency"},
		{models.FieldDueDate, "Due Date"},
	}
	for _, imp := range important {
		field, label := imp.field, imp.label
		rules = append(rules, Rule{
			Name:      "important_" + string(field),
			Category:  CategoryCompleteness,
			Severity:  SeverityWarning,
			Deduction: 5,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.HasField(field) {
					return false, ""
				}
				return true, fmt.Sprintf("Missing important field: %s", label)
			},
		})
	}

	// Format: only evaluated when the field is present.
	rules = append(rules,
		Rule{
			Name:      "invoice_number_length",
			Category:  CategoryFormat,
			Severity:  SeverityError,
			Deduction: 10,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.InvoiceNumber == nil || !rec.HasField(models.FieldInvoiceNumber) {
					return false, ""
				}
				if len(*rec.InvoiceNumber) >= 3 {
					return false, ""
				}
				return true, "Invoice number is too short (minimum 3 characters)"
			},
		},
		dateFormatRule("invoice_date_format", models.FieldInvoiceDate, "invoice date"),
		dateFormatRule("due_date_format", models.FieldDueDate, "due date"),
		Rule{
			Name:      "total_amount_negative",
			Category:  CategoryFormat,
			Severity:  SeverityError,
			Deduction: 15,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.TotalAmount == nil || !rec.TotalAmount.IsNegative() {
					return false, ""
				}
				return true, "Total amount cannot be negative"
			},
		},
		Rule{
			Name:      "total_amount_zero",
			Category:  CategoryFormat,
			Severity:  SeverityWarning,
			Deduction: 5,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.TotalAmount == nil || !rec.TotalAmount.IsZero() {
					return false, ""
				}
				return true, "Total amount is zero"
			},
		},
		Rule{
			Name:      "currency_whitelist",
			Category:  CategoryFormat,
			Severity:  SeverityWarning,
			Deduction: 3,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if !rec.HasField(models.FieldCurrency) {
					return false, ""
				}
				if _, ok := commonCurrencies[*rec.Currency]; ok {
					return false, ""
				}
				return true, fmt.Sprintf("Uncommon currency code: %s", *rec.Currency)
			},
		},
	)

	// Business logic.
	rules = append(rules,
		Rule{
			Name:      "due_before_invoice",
			Category:  CategoryBusiness,
			Severity:  SeverityError,
			Deduction: 15,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				inv, due, ok := parsedDates(rec)
				if !ok || !due.Before(inv) {
					return false, ""
				}
				return true, "Due date cannot be before invoice date"
			},
		},
		Rule{
			Name:      "amount_consistency",
			Category:  CategoryBusiness,
			Severity:  SeverityError,
			Deduction: 20,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.Subtotal == nil || rec.TaxAmount == nil || rec.TotalAmount == nil {
					return false, ""
				}
				calculated := rec.Subtotal.Add(*rec.TaxAmount)
				if calculated.Sub(*rec.TotalAmount).Abs().LessThanOrEqual(amountTolerance) {
					return false, ""
				}
				return true, fmt.Sprintf(
					"Amount mismatch: Subtotal (%s) + Tax (%s) does not equal Total (%s)",
					rec.Subtotal, rec.TaxAmount, rec.TotalAmount,
				)
			},
		},
		Rule{
			Name:      "line_items_sum",
			Category:  CategoryBusiness,
			Severity:  SeverityWarning,
			Deduction: 5,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if len(rec.LineItems) == 0 || rec.Subtotal == nil {
					return false, ""
				}
				sum := decimal.Zero
				for _, item := range rec.LineItems {
					if item.Total != nil {
						sum = sum.Add(*item.Total)
					}
				}
				if sum.Sub(*rec.Subtotal).Abs().LessThanOrEqual(amountTolerance) {
					return false, ""
				}
				return true, fmt.Sprintf(
					"Line items total (%s) does not match subtotal (%s)", sum, rec.Subtotal,
				)
			},
		},
		Rule{
			Name:      "payment_term_length",
			Category:  CategoryBusiness,
			Severity:  SeverityWarning,
			Deduction: 5,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				inv, due, ok := parsedDates(rec)
				if !ok {
					return false, ""
				}
				days := int(due.Sub(inv).Hours() / 24)
				if days <= 365 {
					return false, ""
				}
				return true, fmt.Sprintf("Unusually long payment term: %d days", days)
			},
		},
	)

	// Anomaly detection.
	rules = append(rules,
		Rule{
			Name:      "identical_parties",
			Category:  CategoryAnomaly,
			Severity:  SeverityWarning,
			Deduction: 5,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if !rec.HasField(models.FieldVendorName) || !rec.HasField(models.FieldBuyerName) {
					return false, ""
				}
				if compare.Normalize(*rec.VendorName) != compare.Normalize(*rec.BuyerName) {
					return false, ""
				}
				return true, "Vendor and buyer names are identical"
			},
		},
		Rule{
			Name:      "high_amount",
			Category:  CategoryAnomaly,
			Severity:  SeverityWarning,
			Deduction: 3,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.TotalAmount == nil || !rec.TotalAmount.GreaterThan(highAmount) {
					return false, ""
				}
				return true, fmt.Sprintf("Unusually high amount: %s", rec.TotalAmount)
			},
		},
		Rule{
			Name:      "very_high_amount",
			Category:  CategoryAnomaly,
			Severity:  SeverityError,
			Deduction: 10,
			Check: func(rec *models.Record, _ time.Time) (bool, string) {
				if rec.TotalAmount == nil || !rec.TotalAmount.GreaterThan(veryHighAmount) {
					return false, ""
				}
				return true, fmt.Sprintf("Suspiciously high amount: %s", rec.TotalAmount)
			},
		},
		Rule{
			Name:      "future_invoice_date",
			Category:  CategoryAnomaly,
			Severity:  SeverityWarning,
			Deduction: 5,
			Check: func(rec *models.Record, now time.Time) (bool, string) {
				inv, ok := parsedInvoiceDate(rec)
				if !ok {
					return false, ""
				}
				daysAhead := int(inv.Sub(now).Hours() / 24)
				if daysAhead <= 30 {
					return false, ""
				}
				return true, fmt.Sprintf("Invoice date is %d days in the future", daysAhead)
			},
		},
		Rule{
			Name:      "stale_invoice_date",
			Category:  CategoryAnomaly,
			Severity:  SeverityWarning,
			Deduction: 3,
			Check: func(rec *models.Record, now time.Time) (bool, string) {
				inv, ok := parsedInvoiceDate(rec)
				if !ok {
					return false, ""
				}
				daysOld := int(now.Sub(inv).Hours() / 24)
				if daysOld <= 730 {
					return false, ""
				}
				return true, fmt.Sprintf("Invoice is %d days old", daysOld)
			},
		},
	)

	return rules
}

// dateFormatRule flags a present-but-unparsable date field.
func dateFormatRule(name string, field models.Field, label string) Rule {
	return Rule{
		Name:      name,
		Category:  CategoryFormat,
		Severity:  SeverityError,
		Deduction: 10,
		Check: func(rec *models.Record, _ time.Time) (bool, string) {
			if !rec.HasField(field) {
				return false, ""
			}
			raw := *rec.TextValue(field)
			if _, err := compare.ParseDate(raw); err == nil {
				return false, ""
			}
			return true, fmt.Sprintf("Invalid %s format: %s", label, raw)
		},
	}
}

// parsedDates returns both dates when both are present and parsable.
func parsedDates(rec *models.Record) (inv, due time.Time, ok bool) {
	if !rec.HasField(models.FieldInvoiceDate) || !rec.HasField(models.FieldDueDate) {
		return time.Time{}, time.Time{}, false
	}
	inv, errInv := compare.ParseDate(*rec.InvoiceDate)
	due, errDue := compare.ParseDate(*rec.DueDate)
	if errInv != nil || errDue != nil {
		return time.Time{}, time.Time{}, false
	}
	return inv, due, true
}

// parsedInvoiceDate returns the invoice date when present and parsable.
func parsedInvoiceDate(rec *models.Record) (time.Time, bool) {
	if !rec.HasField(models.FieldInvoiceDate) {
		return time.Time{}, false
	}
	inv, err := compare.ParseDate(*rec.InvoiceDate)
	if err != nil {
		return time.Time{}, false
	}
	return inv, true
}
