package transform

import (
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// SetYield replaces the expected annual yield. Per-year yield overrides
// are dropped unless KeepYearly is set.
type SetYield struct {
	Percent    decimal.Decimal
	KeepYearly bool
}

func (sy *SetYield) Name() string { return "set_yield" }

func (sy *SetYield) Description() string {
	return fmt.Sprintf("Assume a %s%% annual yield", sy.Percent.StringFixed(1))
}

func (sy *SetYield) Validate(base *domain.Scenario) error {
	if err := requireBase(sy.Name(), base); err != nil {
		return err
	}
	if sy.Percent.LessThan(decimal.NewFromInt(-100)) || sy.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return NewTransformError(sy.Name(), "validate", fmt.Sprintf("yield must be between -100 and 100, got %s", sy.Percent), nil)
	}
	return nil
}

func (sy *SetYield) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	p := sy.Percent
	modified.AnnualYieldPercent = &p
	if !sy.KeepYearly {
		modified.YieldByYear = nil
	}
	return modified, nil
}

// SetDuration changes the policy duration.
type SetDuration struct {
	Years int
}

func (sd *SetDuration) Name() string { return "set_duration" }

func (sd *SetDuration) Description() string {
	return fmt.Sprintf("Run the policy for %d years", sd.Years)
}

func (sd *SetDuration) Validate(base *domain.Scenario) error {
	if err := requireBase(sd.Name(), base); err != nil {
		return err
	}
	if sd.Years < 1 || sd.Years > 100 {
		return NewTransformError(sd.Name(), "validate", fmt.Sprintf("years must be between 1 and 100, got %d", sd.Years), nil)
	}
	return nil
}

func (sd *SetDuration) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.DurationYears = sd.Years
	return modified, nil
}

// ExtendDuration lengthens (or with a negative value shortens) the policy.
type ExtendDuration struct {
	Years int
}

func (ed *ExtendDuration) Name() string { return "extend_duration" }

func (ed *ExtendDuration) Description() string {
	return fmt.Sprintf("Extend the policy by %d years", ed.Years)
}

func (ed *ExtendDuration) Validate(base *domain.Scenario) error {
	if err := requireBase(ed.Name(), base); err != nil {
		return err
	}
	return (&SetDuration{Years: base.DurationYears + ed.Years}).Validate(base)
}

func (ed *ExtendDuration) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.DurationYears += ed.Years
	return modified, nil
}

// SetVariant selects a product variant by id.
type SetVariant struct {
	Variant string
}

func (sv *SetVariant) Name() string { return "set_variant" }

func (sv *SetVariant) Description() string {
	return fmt.Sprintf("Use product variant %s", sv.Variant)
}

func (sv *SetVariant) Validate(base *domain.Scenario) error {
	if err := requireBase(sv.Name(), base); err != nil {
		return err
	}
	if sv.Variant == "" {
		return NewTransformError(sv.Name(), "validate", "variant cannot be empty", nil)
	}
	return nil
}

func (sv *SetVariant) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Variant = sv.Variant
	return modified, nil
}

// SetCorporate switches between individual and corporate tax treatment.
type SetCorporate struct {
	Corporate bool
}

func (sc *SetCorporate) Name() string { return "set_corporate" }

func (sc *SetCorporate) Description() string {
	if sc.Corporate {
		return "Tax the policy as a corporate holding"
	}
	return "Tax the policy as an individual holding"
}

func (sc *SetCorporate) Validate(base *domain.Scenario) error {
	return requireBase(sc.Name(), base)
}

func (sc *SetCorporate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.IsCorporate = sc.Corporate
	return modified, nil
}

// SetTaxCredit turns the yearly tax credit on or off.
type SetTaxCredit struct {
	Enabled bool
}

func (st *SetTaxCredit) Name() string { return "set_tax_credit" }

func (st *SetTaxCredit) Description() string {
	if st.Enabled {
		return "Claim the yearly tax credit"
	}
	return "Do not claim the yearly tax credit"
}

func (st *SetTaxCredit) Validate(base *domain.Scenario) error {
	return requireBase(st.Name(), base)
}

func (st *SetTaxCredit) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.TaxCredit.Enabled = st.Enabled
	return modified, nil
}
