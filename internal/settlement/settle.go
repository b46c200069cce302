package settlement

import "github.com/shopspring/decimal"

// DefaultInterestRate is the flat recovery charge applied to the
// outstanding advance balance at settlement time: 2%, not compounded,
// not prorated by days elapsed.
var DefaultInterestRate = decimal.RequireFromString("0.02")

// Settlement is the financial outcome of pricing one delivery.
type Settlement struct {
	TotalValue      decimal.Decimal
	InterestCharges decimal.Decimal
	FinalAmount     decimal.Decimal
}

// Settle converts a delivery's net weight and unit price into the final
// payable amount, net of the farmer's advance balance and the interest
// charged on it. FinalAmount is floored at zero: advances larger than
// the delivery's value carry over, they never invert the payout.
//
// Callers must snapshot advanceBalance once per pricing event; calling
// Settle again with a refreshed balance would double-subtract.
func Settle(netWeight, pricePerKg, advanceBalance, interestRate decimal.Decimal) Settlement {
	total := netWeight.Mul(pricePerKg).Round(2)
	interest := advanceBalance.Mul(interestRate).Round(2)
	final := total.Sub(advanceBalance).Sub(interest)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return Settlement{
		TotalValue:      total,
		InterestCharges: interest,
		FinalAmount:     final,
	}
}
