package transform

import (
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// SetPayment sets the first-year payment of a track. Later years follow
// the track's indexing and overrides as before.
type SetPayment struct {
	Track  domain.Track
	Amount decimal.Decimal
}

func (sp *SetPayment) Name() string { return "set_payment" }

func (sp *SetPayment) Description() string {
	return fmt.Sprintf("Set the %s yearly payment to %s", sp.Track, sp.Amount.StringFixed(0))
}

func (sp *SetPayment) Validate(base *domain.Scenario) error {
	if err := requireBase(sp.Name(), base); err != nil {
		return err
	}
	if err := validTrack(sp.Name(), sp.Track); err != nil {
		return err
	}
	if sp.Amount.IsNegative() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sp.Amount), nil)
	}
	return nil
}

func (sp *SetPayment) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	trackFor(modified, sp.Track).BaseYear1Payment = sp.Amount
	return modified, nil
}

// ScalePayments multiplies the base payment and every explicit payment
// override of a track by Factor.
type ScalePayments struct {
	Track  domain.Track
	Factor decimal.Decimal
}

func (sc *ScalePayments) Name() string { return "scale_payments" }

func (sc *ScalePayments) Description() string {
	return fmt.Sprintf("Scale %s payments by %s", sc.Track, sc.Factor.StringFixed(2))
}

func (sc *ScalePayments) Validate(base *domain.Scenario) error {
	if err := requireBase(sc.Name(), base); err != nil {
		return err
	}
	if err := validTrack(sc.Name(), sc.Track); err != nil {
		return err
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	if sc.Track == domain.TrackEseti && base.Eseti == nil {
		return NewTransformError(sc.Name(), "validate", "scenario has no eseti track", nil)
	}
	return nil
}

func (sc *ScalePayments) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	ts := modified.TrackSettingsFor(sc.Track)
	ts.BaseYear1Payment = ts.BaseYear1Payment.Mul(sc.Factor)
	for year, v := range ts.PaymentByYear {
		ts.PaymentByYear[year] = v.Mul(sc.Factor)
	}
	return modified, nil
}

// SetIndex sets the default yearly indexation of a track.
type SetIndex struct {
	Track    domain.Track
	Percent  decimal.Decimal
	Compound *bool // nil keeps the current mode
}

func (si *SetIndex) Name() string { return "set_index" }

func (si *SetIndex) Description() string {
	return fmt.Sprintf("Index %s payments by %s%% a year", si.Track, si.Percent.StringFixed(1))
}

func (si *SetIndex) Validate(base *domain.Scenario) error {
	if err := requireBase(si.Name(), base); err != nil {
		return err
	}
	if err := validTrack(si.Name(), si.Track); err != nil {
		return err
	}
	if si.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("index cannot be below -100%%, got %s", si.Percent), nil)
	}
	return nil
}

func (si *SetIndex) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	ts := trackFor(modified, si.Track)
	ts.BaseAnnualIndexPercent = si.Percent
	if si.Compound != nil {
		ts.CompoundIndex = *si.Compound
	}
	return modified, nil
}

// yearAmount writes one per-year override.
type yearAmount struct {
	Track  domain.Track
	Year   int
	Amount decimal.Decimal
}

func (ya yearAmount) validate(name string, base *domain.Scenario) error {
	if err := requireBase(name, base); err != nil {
		return err
	}
	if err := validTrack(name, ya.Track); err != nil {
		return err
	}
	if ya.Year < 1 || ya.Year > base.DurationYears+1 {
		return NewTransformError(name, "validate", fmt.Sprintf("year %d outside 1..%d", ya.Year, base.DurationYears+1), nil)
	}
	if ya.Amount.IsNegative() {
		return NewTransformError(name, "validate", fmt.Sprintf("amount must be non-negative, got %s", ya.Amount), nil)
	}
	return nil
}

func setYear(m *map[int]decimal.Decimal, year int, v decimal.Decimal) {
	if *m == nil {
		*m = make(map[int]decimal.Decimal)
	}
	(*m)[year] = v
}

// SetYearPayment overrides the payment of one year of a track.
type SetYearPayment struct{ yearAmount }

// NewSetYearPayment creates a per-year payment override.
func NewSetYearPayment(track domain.Track, year int, amount decimal.Decimal) *SetYearPayment {
	return &SetYearPayment{yearAmount{Track: track, Year: year, Amount: amount}}
}

func (p *SetYearPayment) Name() string { return "set_year_payment" }

func (p *SetYearPayment) Description() string {
	return fmt.Sprintf("Pay %s into %s in year %d", p.Amount.StringFixed(0), p.Track, p.Year)
}

func (p *SetYearPayment) Validate(base *domain.Scenario) error { return p.validate(p.Name(), base) }

func (p *SetYearPayment) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	ts := trackFor(modified, p.Track)
	setYear(&ts.PaymentByYear, p.Year, p.Amount)
	return modified, nil
}

// AddWithdrawal schedules a withdrawal from a track in one year.
type AddWithdrawal struct{ yearAmount }

// NewAddWithdrawal creates a withdrawal transform.
func NewAddWithdrawal(track domain.Track, year int, amount decimal.Decimal) *AddWithdrawal {
	return &AddWithdrawal{yearAmount{Track: track, Year: year, Amount: amount}}
}

func (w *AddWithdrawal) Name() string { return "add_withdrawal" }

func (w *AddWithdrawal) Description() string {
	return fmt.Sprintf("Withdraw %s from %s in year %d", w.Amount.StringFixed(0), w.Track, w.Year)
}

func (w *AddWithdrawal) Validate(base *domain.Scenario) error {
	if err := w.validate(w.Name(), base); err != nil {
		return err
	}
	if w.Track == domain.TrackEseti && base.Eseti == nil {
		return NewTransformError(w.Name(), "validate", "scenario has no eseti track", nil)
	}
	return nil
}

func (w *AddWithdrawal) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	ts := modified.TrackSettingsFor(w.Track)
	setYear(&ts.WithdrawalByYear, w.Year, ts.WithdrawalByYear[w.Year].Add(w.Amount))
	return modified, nil
}
