package settlement

import "github.com/shopspring/decimal"

// Industry constants for green-leaf intake. The per-bag tare is fixed;
// the moisture penalty kicks in above the threshold, linearly per
// excess percentage point per bag.
var (
	perBagDeductionKg = decimal.NewFromInt(2)
	moistureThreshold = decimal.NewFromInt(14)
	moisturePenaltyKg = decimal.RequireFromString("0.1")
)

// GrossWeight sums the individual bag weights. No rounding: the inputs
// are already fixed-precision and addition cannot drift.
func GrossWeight(weights []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(w)
	}
	return total
}

// StandardDeduction converts bag count and moisture content into the
// standard (tare + moisture) weight deduction, in kg, rounded to 2
// decimal places. bagsCount > 0 and moisture in [0,100] are the
// caller's responsibility.
func StandardDeduction(bagsCount int, moistureContent decimal.Decimal) decimal.Decimal {
	bags := decimal.NewFromInt(int64(bagsCount))
	total := bags.Mul(perBagDeductionKg)
	if excess := moistureContent.Sub(moistureThreshold); excess.IsPositive() {
		total = total.Add(bags.Mul(excess).Mul(moisturePenaltyKg))
	}
	return total.Round(2)
}

// NetWeight is gross minus standard and quality deductions, floored at
// zero. Deductions can legitimately exceed gross on a badly spoiled
// load; a negative payable weight never makes sense.
func NetWeight(gross, standardDeduction, qualityDeduction decimal.Decimal) decimal.Decimal {
	net := gross.Sub(standardDeduction).Sub(qualityDeduction)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}
