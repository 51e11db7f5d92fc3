package core

import "github.com/shopspring/decimal"

// DefaultGSTRate is the fallback GST percentage stored on new bills and the
// fixed rate the GST summary report applies to stored subtotals.
var DefaultGSTRate = decimal.NewFromInt(18)

// twoHundred divides a rate-applied amount into one half of the GST split:
// amount × rate / 200 = (amount × rate / 100) / 2.
var twoHundred = decimal.NewFromInt(200)

// GSTBreakdown is the result of applying a GST rate to a base amount.
type GSTBreakdown struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	Total decimal.Decimal `json:"total"`
}

// ComputeGST applies ratePercent to baseAmount, splitting the tax evenly
// between CGST and SGST. The even split is India's dual-GST rule for
// intra-state supply and is deliberately not configurable.
//
// Each half is rounded to currency precision (2 decimal places) at the point
// of computation, so CGST == SGST always holds and Total is exact:
// Total = baseAmount + CGST + SGST.
func ComputeGST(baseAmount, ratePercent decimal.Decimal) (GSTBreakdown, error) {
	if baseAmount.IsNegative() {
		return GSTBreakdown{}, validationErrorf("baseAmount", "cannot be negative")
	}
	if ratePercent.IsNegative() {
		return GSTBreakdown{}, validationErrorf("ratePercent", "cannot be negative")
	}

	half := baseAmount.Mul(ratePercent).Div(twoHundred).Round(2)
	return GSTBreakdown{
		CGST:  half,
		SGST:  half,
		Total: baseAmount.Add(half).Add(half),
	}, nil
}
