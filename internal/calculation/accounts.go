package calculation

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// subAccount is the running state of one ledger plus the flows of the current period
type subAccount struct {
	balance decimal.Decimal
	flows   domain.AccountBreakdown
}

func (a *subAccount) startPeriod() {
	a.flows = domain.AccountBreakdown{}
}

// take removes up to amount from the balance and returns what was taken.
func (a *subAccount) take(amount decimal.Decimal) decimal.Decimal {
	taken := decimal.Min(money.Max0(amount), money.Max0(a.balance))
	a.balance = a.balance.Sub(taken)
	return taken
}

func (a *subAccount) charge(amount decimal.Decimal) decimal.Decimal {
	taken := a.take(amount)
	a.flows.CostForYear = a.flows.CostForYear.Add(taken)
	return taken
}

func (a *subAccount) credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

func (a *subAccount) recordEntry(id string, amount decimal.Decimal) {
	if a.flows.CustomEntriesByID == nil {
		a.flows.CustomEntriesByID = make(map[string]decimal.Decimal)
	}
	a.flows.CustomEntriesByID[id] = a.flows.CustomEntriesByID[id].Add(amount)
}

func (a *subAccount) breakdown() domain.AccountBreakdown {
	out := a.flows
	out.EndBalance = a.balance
	return out
}

// policyAccounts holds the three sub-accounts of one track
type policyAccounts struct {
	client   subAccount
	invested subAccount
	taxBonus subAccount
}

func (p *policyAccounts) all() []*subAccount {
	return []*subAccount{&p.client, &p.invested, &p.taxBonus}
}

func (p *policyAccounts) startPeriod() {
	for _, a := range p.all() {
		a.startPeriod()
	}
}

func (p *policyAccounts) total() decimal.Decimal {
	return p.client.balance.Add(p.invested.balance).Add(p.taxBonus.balance)
}

// chargeFixed charges invested first and spills the remainder into client.
// It returns the amount taken from each.
func (p *policyAccounts) chargeFixed(amount decimal.Decimal) (fromInvested, fromClient decimal.Decimal) {
	fromInvested = p.invested.charge(amount)
	fromClient = p.client.charge(amount.Sub(fromInvested))
	return fromInvested, fromClient
}

// withdraw pays out client, then invested, then taxBonus, never below zero.
func (p *policyAccounts) withdraw(amount decimal.Decimal) decimal.Decimal {
	remaining := money.Max0(amount)
	paid := decimal.Zero
	for _, a := range p.all() {
		taken := a.take(remaining)
		paid = paid.Add(taken)
		remaining = remaining.Sub(taken)
	}
	return paid
}

// target maps a custom entry account onto a sub-account of the given track.
// Track-scoped entries land on invested; nil means the entry does not apply.
func (p *policyAccounts) target(account domain.EntryAccount, track domain.Track) *subAccount {
	switch account {
	case domain.AccountClient:
		return &p.client
	case domain.AccountInvested, "":
		return &p.invested
	case domain.AccountTaxBonus:
		return &p.taxBonus
	case domain.AccountMain:
		if track == domain.TrackMain {
			return &p.invested
		}
	case domain.AccountEseti:
		if track == domain.TrackEseti {
			return &p.invested
		}
	}
	return nil
}
