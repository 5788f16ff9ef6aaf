package validate

import (
	"strings"
	"testing"
	"time"

	"invoicely/feature/invoice/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func dec(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

// fixedEngine returns an engine whose clock is pinned so the date anomaly
// rules behave deterministically.
func fixedEngine() *Engine {
	e := New(nil)
	e.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return e
}

// cleanRecord validates with a perfect score under the fixed clock.
func cleanRecord() *models.Record {
	return &models.Record{
		InvoiceNumber: str("INV-100"),
		VendorName:    str("Acme Corporation"),
		BuyerName:     str("Globex LLC"),
		InvoiceDate:   str("2024-05-15"),
		DueDate:       str("2024-06-14"),
		Currency:      str("USD"),
		Subtotal:      dec("1000.00"),
		TaxAmount:     dec("80.00"),
		TotalAmount:   dec("1080.00"),
	}
}

func TestValidateNilRecord(t *testing.T) {
	_, err := fixedEngine().Validate(nil)
	assert.ErrorIs(t, err, ErrNilRecord)
}

func TestValidateCleanRecord(t *testing.T) {
	res, err := fixedEngine().Validate(cleanRecord())
	require.NoError(t, err)

	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.Valid)
	assert.Equal(t, VerdictValid, res.Verdict)
	assert.Equal(t, "INV-100", res.InvoiceNumber)
}

func TestValidateEmptyRecord(t *testing.T) {
	// A record with no fields populated is legal input, not an error.
	res, err := fixedEngine().Validate(&models.Record{})
	require.NoError(t, err)

	// 4 required errors (-15 each) and 3 important warnings (-5 each).
	assert.Len(t, res.Errors, 4)
	assert.Len(t, res.Warnings, 3)
	assert.Equal(t, 25, res.Score)
	assert.False(t, res.Valid)
	assert.Equal(t, VerdictInvalid, res.Verdict)
}

func TestValidateCompleteness(t *testing.T) {
	// Spec scenario: identifier and invoice date absent, everything else
	// present. Exactly two -15 errors leave the record at 70.
	rec := cleanRecord()
	rec.InvoiceNumber = nil
	rec.InvoiceDate = nil

	res, err := fixedEngine().Validate(rec)
	require.NoError(t, err)

	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "Invoice Number")
	assert.Contains(t, res.Errors[1], "Invoice Date")
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 70, res.Score)
	assert.False(t, res.Valid)
	assert.Equal(t, VerdictWarning, res.Verdict)
}

func TestValidateFormats(t *testing.T) {
	t.Run("ShortInvoiceNumber", func(t *testing.T) {
		rec := cleanRecord()
		rec.InvoiceNumber = str("A1")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Equal(t, 90, res.Score)
		assert.Contains(t, res.Errors[0], "too short")
	})

	t.Run("UnparsableDatesAreFormatErrors", func(t *testing.T) {
		rec := cleanRecord()
		rec.InvoiceDate = str("sometime in spring")
		rec.DueDate = str("later")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)

		// Two -10 format errors; the business rules silently skip the
		// unparsable pair instead of failing.
		assert.Equal(t, 80, res.Score)
		assert.Len(t, res.Errors, 2)
		assert.True(t, res.Valid)
	})

	t.Run("NegativeTotal", func(t *testing.T) {
		rec := cleanRecord()
		rec.TotalAmount = dec("-50.00")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Contains(t, res.Errors[0], "cannot be negative")
		// -15 for the negative amount, -20 for broken subtotal+tax=total.
		assert.Equal(t, 65, res.Score)
	})

	t.Run("ZeroTotalIsAdvisory", func(t *testing.T) {
		rec := cleanRecord()
		rec.Subtotal = nil
		rec.TaxAmount = nil
		rec.TotalAmount = dec("0.00")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Empty(t, res.Errors)
		assert.Contains(t, res.Warnings[0], "zero")
		assert.Equal(t, 95, res.Score)
	})

	t.Run("UncommonCurrency", func(t *testing.T) {
		rec := cleanRecord()
		rec.Currency = str("XAU")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Contains(t, res.Warnings[0], "XAU")
		assert.Equal(t, 97, res.Score)
	})
}

func TestValidateBusinessLogic(t *testing.T) {
	t.Run("AmountsConsistent", func(t *testing.T) {
		// 1000.00 + 80.00 == 1080.00: no amount-consistency violation.
		res, err := fixedEngine().Validate(cleanRecord())
		require.NoError(t, err)
		assert.Empty(t, res.Errors)
	})

	t.Run("AmountMismatch", func(t *testing.T) {
		rec := cleanRecord()
		rec.Subtotal = dec("2000.00")
		rec.TaxAmount = dec("160.00")
		rec.TotalAmount = dec("2500.00")

		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)

		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "Amount mismatch")
		assert.Equal(t, 80, res.Score)
		assert.True(t, res.Valid, "flagged but still inside the valid band")
	})

	t.Run("WithinMinorUnitTolerance", func(t *testing.T) {
		rec := cleanRecord()
		rec.TotalAmount = dec("1080.01")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Empty(t, res.Errors, "a one-cent rounding gap is tolerated")
	})

	t.Run("DueBeforeInvoice", func(t *testing.T) {
		rec := cleanRecord()
		rec.DueDate = str("2024-05-01")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Contains(t, res.Errors[0], "before invoice date")
		assert.Equal(t, 85, res.Score)
	})

	t.Run("LongPaymentTerm", func(t *testing.T) {
		rec := cleanRecord()
		rec.InvoiceDate = str("2023-01-10")
		rec.DueDate = str("2024-05-20")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)

		found := false
		for _, w := range res.Warnings {
			if strings.Contains(w, "payment term") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("LineItemsSumMismatch", func(t *testing.T) {
		rec := cleanRecord()
		rec.LineItems = []models.LineItem{
			{Description: "Widget", Total: dec("400.00")},
			{Description: "Gadget", Total: dec("500.00")},
		}
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "does not match subtotal")
		assert.Equal(t, 95, res.Score)
	})

	t.Run("LineItemsSumMatches", func(t *testing.T) {
		rec := cleanRecord()
		rec.LineItems = []models.LineItem{
			{Description: "Widget", Total: dec("400.00")},
			{Description: "Gadget", Total: dec("600.00")},
		}
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Empty(t, res.Warnings)
	})
}

func TestValidateAnomalies(t *testing.T) {
	t.Run("IdenticalParties", func(t *testing.T) {
		rec := cleanRecord()
		rec.BuyerName = str("  ACME   corporation ")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "identical")
	})

	t.Run("TwoTierAmountThresholds", func(t *testing.T) {
		rec := cleanRecord()
		rec.Subtotal = nil
		rec.TaxAmount = nil
		rec.TotalAmount = dec("20000000.00")

		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)

		// Both tiers fire: -3 advisory and -10 blocking.
		require.Len(t, res.Warnings, 1)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Warnings[0], "Unusually high")
		assert.Contains(t, res.Errors[0], "Suspiciously high")
		assert.Equal(t, 87, res.Score)
	})

	t.Run("OnlyFirstTier", func(t *testing.T) {
		rec := cleanRecord()
		rec.Subtotal = nil
		rec.TaxAmount = nil
		rec.TotalAmount = dec("2000000.00")

		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		assert.Empty(t, res.Errors)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, 97, res.Score)
	})

	t.Run("FutureInvoiceDate", func(t *testing.T) {
		rec := cleanRecord()
		rec.InvoiceDate = str("2024-08-15")
		rec.DueDate = str("2024-09-14")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "days in the future")
	})

	t.Run("StaleInvoiceDate", func(t *testing.T) {
		rec := cleanRecord()
		rec.InvoiceDate = str("2021-01-15")
		rec.DueDate = str("2021-02-14")
		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "days old")
	})
}

func TestValidateScoreClamping(t *testing.T) {
	t.Run("ManyViolationsAllReported", func(t *testing.T) {
		rec := &models.Record{
			InvoiceNumber: str("A"),
			InvoiceDate:   str("not a date"),
			DueDate:       str("also not a date"),
			TotalAmount:   dec("-50.00"),
		}

		res, err := fixedEngine().Validate(rec)
		require.NoError(t, err)

		// Missing vendor, short identifier, two bad dates, negative
		// amount and the missing important fields all surface even
		// though the record is far past rejection.
		assert.Len(t, res.Errors, 5)
		assert.Len(t, res.Warnings, 2)
		assert.Equal(t, 30, res.Score)
		assert.Equal(t, VerdictInvalid, res.Verdict)
	})

	t.Run("FlooredAtZero", func(t *testing.T) {
		rules := []Rule{{
			Name:      "catastrophic",
			Category:  CategoryCompleteness,
			Severity:  SeverityError,
			Deduction: 150,
			Check: func(_ *models.Record, _ time.Time) (bool, string) {
				return true, "beyond repair"
			},
		}}

		res, err := New(rules).Validate(&models.Record{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, VerdictInvalid, res.Verdict)
	})
}

func TestValidateCustomRuleTable(t *testing.T) {
	// Engines accept alternate immutable rule sets for deterministic,
	// parallel-safe testing.
	rules := []Rule{
		{
			Name:      "always_fires",
			Category:  CategoryCompleteness,
			Severity:  SeverityWarning,
			Deduction: 40,
			Check: func(_ *models.Record, _ time.Time) (bool, string) {
				return true, "custom rule fired"
			},
		},
	}

	e := New(rules)
	res, err := e.Validate(&models.Record{})
	require.NoError(t, err)

	assert.Equal(t, 60, res.Score)
	assert.Equal(t, []string{"custom rule fired"}, res.Warnings)
	assert.Equal(t, VerdictWarning, res.Verdict)
}
