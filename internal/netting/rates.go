package netting

import (
	"github.com/shopspring/decimal"
)

// WITHHOLDING TAX ASSUMPTIONS:
//
// 1. Main account: the holding period runs from account start, so the rate
//    steps down with cumulative elapsed days (5 and 10 year brackets).
//
// 2. Extraordinary (eseti) account: each contribution lot ages separately
//    (3 and 5 year brackets); the account rate is the principal-weighted
//    average of the lot rates.
//
// 3. Corporate holders pay roughly half the individual rate; after the last
//    bracket the gain is tax free for both.

// Bracket is one step of a holding-period tax schedule. UpToDays == 0
// marks the open-ended last bracket.
type Bracket struct {
	UpToDays   int
	Individual decimal.Decimal
	Corporate  decimal.Decimal
}

// Schedule is an ordered list of brackets, shortest holding period first.
type Schedule []Bracket

// Rate returns the rate for a holding period of days. Bracket bounds are inclusive.
func (s Schedule) Rate(days int, isCorporate bool) decimal.Decimal {
	for _, b := range s {
		if b.UpToDays == 0 || days <= b.UpToDays {
			if isCorporate {
				return b.Corporate
			}
			return b.Individual
		}
	}
	return decimal.Zero
}

const daysPerYear = 365

// MainSchedule is the holding-period schedule of the main account.
var MainSchedule = Schedule{
	{UpToDays: 5 * daysPerYear, Individual: decimal.RequireFromString("0.28"), Corporate: decimal.RequireFromString("0.15")},
	{UpToDays: 10 * daysPerYear, Individual: decimal.RequireFromString("0.14"), Corporate: decimal.RequireFromString("0.075")},
	{UpToDays: 0, Individual: decimal.Zero, Corporate: decimal.Zero},
}

// EsetiSchedule is the per-lot schedule of the extraordinary account.
var EsetiSchedule = Schedule{
	{UpToDays: 3 * daysPerYear, Individual: decimal.RequireFromString("0.28"), Corporate: decimal.RequireFromString("0.15")},
	{UpToDays: 5 * daysPerYear, Individual: decimal.RequireFromString("0.14"), Corporate: decimal.RequireFromString("0.075")},
	{UpToDays: 0, Individual: decimal.Zero, Corporate: decimal.Zero},
}

// MainTaxRateByDays returns the main-account rate after elapsedDays since account start.
func MainTaxRateByDays(elapsedDays int, isCorporate bool) decimal.Decimal {
	return MainSchedule.Rate(elapsedDays, isCorporate)
}

// EsetiTaxRateByLotAgeDays returns the rate for a single lot of the given age.
func EsetiTaxRateByLotAgeDays(ageDays int, isCorporate bool) decimal.Decimal {
	return EsetiSchedule.Rate(ageDays, isCorporate)
}
