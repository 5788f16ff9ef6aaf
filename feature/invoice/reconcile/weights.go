package reconcile

import "invoicely/feature/invoice/models"

// Weight is the per-producer reliability of one field. Secondary is always
// at least Primary: the heavyweight producer is modeled as strictly more
// reliable. The table does not currently alter win/lose outcomes (the
// secondary wins ties and conflicts outright); it is carried for future
// weighted-resolution tuning and surfaced in merge diagnostics.
type Weight struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
}

// Weights maps each canonical field to its producer reliability pair.
type Weights map[models.Field]Weight

// DefaultWeights is the production reliability table.
func DefaultWeights() Weights {
	return Weights{
		models.FieldInvoiceNumber: {Primary: 0.85, Secondary: 0.95},
		models.FieldVendorName:    {Primary: 0.80, Secondary: 0.90},
		models.FieldVendorAddress: {Primary: 0.75, Secondary: 0.85},
		models.FieldBuyerName:     {Primary: 0.80, Secondary: 0.90},
		models.FieldBuyerAddress:  {Primary: 0.75, Secondary: 0.85},
		models.FieldInvoiceDate:   {Primary: 0.85, Secondary: 0.95},
		models.FieldDueDate:       {Primary: 0.80, Secondary: 0.90},
		models.FieldCurrency:      {Primary: 0.90, Secondary: 0.95},
		models.FieldSubtotal:      {Primary: 0.85, Secondary: 0.90},
		models.FieldTaxAmount:     {Primary: 0.85, Secondary: 0.90},
		models.FieldTotalAmount:   {Primary: 0.90, Secondary: 0.95},
		models.FieldPaymentTerms:  {Primary: 0.70, Secondary: 0.80},
		models.FieldLineItems:     {Primary: 0.75, Secondary: 0.85},
	}
}

// Lookup returns the weight pair for a field, falling back to a conservative
// pair for fields missing from the table.
func (w Weights) Lookup(f models.Field) Weight {
	if wt, ok := w[f]; ok {
		return wt
	}
	return Weight{Primary: 0.70, Secondary: 0.80}
}
