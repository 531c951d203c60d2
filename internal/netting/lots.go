package netting

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// Lot is a principal amount tagged with the elapsed day it was contributed on
type Lot struct {
	ContributionDay    int             `json:"contributionDay"`
	PrincipalRemaining decimal.Decimal `json:"principalRemaining"`
}

// LotLedger is an ordered list of tax lots. Withdrawals shrink every lot by
// the same factor rather than consuming lots by age.
type LotLedger struct {
	lots []Lot
}

// Add records a new lot. Non-positive amounts are ignored.
func (l *LotLedger) Add(day int, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	l.lots = append(l.lots, Lot{ContributionDay: day, PrincipalRemaining: amount})
}

// Principal returns the sum of remaining principal across lots.
func (l *LotLedger) Principal() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots {
		total = total.Add(lot.PrincipalRemaining)
	}
	return total
}

// Withdraw reduces every lot pro rata so total principal drops by amount,
// never below zero. It returns the reduction factor applied.
func (l *LotLedger) Withdraw(amount decimal.Decimal) decimal.Decimal {
	before := l.Principal()
	if !amount.IsPositive() || !before.IsPositive() {
		return decimal.NewFromInt(1)
	}
	factor := money.Max0(before.Sub(amount).Div(before))
	for i := range l.lots {
		l.lots[i].PrincipalRemaining = l.lots[i].PrincipalRemaining.Mul(factor)
	}
	return factor
}

// WeightedRate returns the principal-weighted tax rate of the ledger at
// elapsedDays, or zero when no principal remains.
func (l *LotLedger) WeightedRate(elapsedDays int, isCorporate bool) decimal.Decimal {
	principal := l.Principal()
	if !principal.IsPositive() {
		return decimal.Zero
	}
	weighted := decimal.Zero
	for _, lot := range l.lots {
		if !lot.PrincipalRemaining.IsPositive() {
			continue
		}
		rate := EsetiTaxRateByLotAgeDays(elapsedDays-lot.ContributionDay, isCorporate)
		weighted = weighted.Add(lot.PrincipalRemaining.Mul(rate))
	}
	return weighted.Div(principal)
}

// Lots returns a copy of the current lots.
func (l *LotLedger) Lots() []Lot {
	return append([]Lot(nil), l.lots...)
}
