// Package fees computes the platform commission for a sale. The same function
// runs wherever a price is quoted or a transaction is created, so quoted fees
// and charged fees can never diverge.
package fees

// Fee rates in basis points. Promoted listings pay a flat discounted rate;
// everything else is tiered on the sale price.
const (
	PromotedRateBps  = 600
	HighValueRateBps = 1000
	StandardRateBps  = 1500

	// HighValueThreshold is the price, in cents, at which the lower tier
	// applies. The boundary is inclusive: a sale at exactly this price uses
	// the high-value rate.
	HighValueThreshold = 20000
)

// Quote is the fee breakdown for a sale. Amounts are integer cents and
// Fee + Net == Amount always holds exactly.
type Quote struct {
	Amount  int64
	RateBps int64
	Fee     int64
	Net     int64
}

// RateBps returns the commission rate in basis points for a price and
// promotion flag.
func RateBps(amount int64, promoted bool) int64 {
	if promoted {
		return PromotedRateBps
	}
	if amount >= HighValueThreshold {
		return HighValueRateBps
	}
	return StandardRateBps
}

// Compute returns the fee quote for a sale of amount cents. The fee rounds
// half-up to the nearest cent; the net amount is the exact remainder.
func Compute(amount int64, promoted bool) Quote {
	rate := RateBps(amount, promoted)
	fee := (amount*rate + 5000) / 10000
	return Quote{
		Amount:  amount,
		RateBps: rate,
		Fee:     fee,
		Net:     amount - fee,
	}
}
