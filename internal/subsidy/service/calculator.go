package service

import (
	"github.com/shopspring/decimal"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
)

// CalculateAmount computes the value of one subsidy for a given system size
// and total investment cost. It is pure: ineligible inputs degrade to 0
// rather than an error, since "not eligible" is a valid terminal state.
//
// Rounding happens only here, to currency cents, half away from zero.
func CalculateAmount(record *subsidydomain.SubsidyRecord, systemKwp, totalInvestmentCost float64) float64 {
	if record == nil || !record.IsActive {
		return 0
	}
	// Re-checked defensively; FindEligible filters this upstream.
	if systemKwp < record.MinKwpRequired {
		return 0
	}

	cappedKwp := systemKwp
	if record.MaxKwpEligible != nil && systemKwp > *record.MaxKwpEligible {
		cappedKwp = *record.MaxKwpEligible
	}

	var amount float64
	switch record.Kind {
	case subsidydomain.KindPercentageCost:
		costBase := totalInvestmentCost
		// When the system exceeds the eligible size, only the proportional
		// share of the cost is subsidisable.
		if record.MaxKwpEligible != nil && systemKwp > *record.MaxKwpEligible && systemKwp > 0 {
			costBase = totalInvestmentCost / systemKwp * *record.MaxKwpEligible
		}
		amount = costBase * record.Value
	case subsidydomain.KindFixedAmount:
		amount = record.Value
	case subsidydomain.KindAmountPerKwp:
		amount = cappedKwp * record.Value
	}

	if record.MaxAmountEUR != nil && amount > *record.MaxAmountEUR {
		amount = *record.MaxAmountEUR
	}

	return roundEUR(amount)
}

// roundEUR rounds to 2 decimals, half away from zero.
func roundEUR(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
