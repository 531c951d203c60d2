package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// tableProduct resolves variants from a static table
type tableProduct struct {
	id             ID
	name           string
	summary        string
	defaultVariant string
	variants       []Variant
}

func (p *tableProduct) Describe() Description {
	ids := make([]string, 0, len(p.variants))
	for _, v := range p.variants {
		ids = append(ids, v.ID)
	}
	return Description{
		ID:             p.id,
		Name:           p.name,
		Summary:        p.summary,
		DefaultVariant: p.defaultVariant,
		Variants:       ids,
	}
}

// Resolve picks the variant by explicit id, then by currency, then the default.
func (p *tableProduct) Resolve(opts VariantOptions) (Variant, error) {
	variant, err := p.pick(opts)
	if err != nil {
		return Variant{}, err
	}
	if variant.MinDurationYears > 0 && opts.DurationYears > 0 && opts.DurationYears < variant.MinDurationYears {
		return Variant{}, fmt.Errorf("%w: variant %s requires at least %d years, got %d",
			ErrDurationTooShort, variant.ID, variant.MinDurationYears, opts.DurationYears)
	}
	return variant, nil
}

func (p *tableProduct) pick(opts VariantOptions) (Variant, error) {
	if opts.VariantID != "" {
		for _, v := range p.variants {
			if strings.EqualFold(v.ID, opts.VariantID) {
				return v, nil
			}
		}
		return Variant{}, fmt.Errorf("%w: %s", ErrUnknownVariant, opts.VariantID)
	}

	if opts.Currency != "" {
		for _, v := range p.variants {
			if strings.EqualFold(v.Currency, opts.Currency) {
				return v, nil
			}
		}
		return Variant{}, fmt.Errorf("%w: no %s variant", ErrUnknownVariant, strings.ToUpper(opts.Currency))
	}

	for _, v := range p.variants {
		if v.ID == p.defaultVariant {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: default %s missing", ErrUnknownVariant, p.defaultVariant)
}

// The tables below are illustrative and do not describe any real product.

func unitLinkedProduct() *tableProduct {
	hufMain := Costs{
		UpfrontCostPercent:        Percents(60, 30, 10, 0),
		AdminFeeMonthly:           decimal.NewFromInt(500),
		AccountMaintenancePercent: Percents(0, 0, 0, 0.2),
		AssetBasedFeePercent:      Percents(1.5),
		BonusPercent:              Percents(0, 0, 0, 0, 0, 0, 0, 0, 0, 1),
		SurrenderChargePercent:    Percents(20, 15, 10, 5, 0),
	}
	hufEseti := Costs{
		UpfrontCostPercent:   Percents(3),
		AssetBasedFeePercent: Percents(1.5),
	}

	eurMain := hufMain
	eurMain.AdminFeeMonthly = decimal.NewFromInt(2)

	return &tableProduct{
		id:             GenericUnitLinked,
		name:           "Generic unit-linked savings",
		summary:        "Regular-premium unit-linked policy with an optional extraordinary account",
		defaultVariant: "huf",
		variants: []Variant{
			{
				ProductID:            GenericUnitLinked,
				ID:                   "huf",
				Name:                 "HUF regular premium",
				Currency:             "HUF",
				DefaultYieldPercent:  decimal.NewFromInt(6),
				InvestedSharePercent: decimal.NewFromInt(100),
				MinDurationYears:     5,
				Main:                 hufMain,
				Eseti:                hufEseti,
			},
			{
				ProductID:            GenericUnitLinked,
				ID:                   "eur",
				Name:                 "EUR regular premium",
				Currency:             "EUR",
				DefaultYieldPercent:  decimal.NewFromInt(4),
				InvestedSharePercent: decimal.NewFromInt(100),
				MinDurationYears:     5,
				Main:                 eurMain,
				Eseti:                hufEseti,
			},
		},
	}
}

func pensionProduct() *tableProduct {
	return &tableProduct{
		id:             GenericPension,
		name:           "Generic pension policy",
		summary:        "Pension-eligible policy with a capped tax credit on contributions",
		defaultVariant: "standard",
		variants: []Variant{
			{
				ProductID:            GenericPension,
				ID:                   "standard",
				Name:                 "Standard",
				Currency:             "HUF",
				DefaultYieldPercent:  decimal.NewFromInt(5),
				InvestedSharePercent: decimal.NewFromInt(80),
				MinDurationYears:     10,
				Main: Costs{
					UpfrontCostPercent:   Percents(50, 25, 5, 0),
					AdminFeeMonthly:      decimal.NewFromInt(300),
					AssetBasedFeePercent: Percents(1.2),
					BonusPercent:         Percents(0, 0, 0, 0, 0, 0, 0, 0, 0, 0.5),
				},
				Eseti: Costs{
					UpfrontCostPercent:   Percents(2),
					AssetBasedFeePercent: Percents(1.2),
				},
				TaxCredit: &TaxCreditRule{
					RatePercent: decimal.NewFromInt(20),
					CapPerYear:  decimal.NewFromInt(130_000),
				},
			},
		},
	}
}

func singlePremiumProduct() *tableProduct {
	single := Costs{
		UpfrontCostPercent:     Percents(2),
		AssetBasedFeePercent:   Percents(1.6),
		PlusCost:               Percents(0),
		SurrenderChargePercent: Percents(3, 2, 1, 0),
	}
	return &tableProduct{
		id:             GenericSinglePremium,
		name:           "Generic single premium",
		summary:        "One-off investment policy; only the first-year payment is expected",
		defaultVariant: "huf",
		variants: []Variant{
			{
				ProductID:            GenericSinglePremium,
				ID:                   "huf",
				Name:                 "HUF single premium",
				Currency:             "HUF",
				DefaultYieldPercent:  decimal.NewFromInt(5),
				ManagementFeePercent: decimal.NewFromFloat(0.3),
				InvestedSharePercent: decimal.NewFromInt(100),
				Main:                 single,
				Eseti:                single,
			},
			{
				ProductID:            GenericSinglePremium,
				ID:                   "usd",
				Name:                 "USD single premium",
				Currency:             "USD",
				DefaultYieldPercent:  decimal.NewFromFloat(4.5),
				ManagementFeePercent: decimal.NewFromFloat(0.3),
				InvestedSharePercent: decimal.NewFromInt(100),
				Main:                 single,
				Eseti:                single,
			},
		},
	}
}
