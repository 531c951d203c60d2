package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func baseScenario() *domain.Scenario {
	yield := d(6)
	return &domain.Scenario{
		Name:               "base",
		Product:            "generic_unit_linked",
		DurationYears:      10,
		AnnualYieldPercent: &yield,
		YieldByYear:        map[int]decimal.Decimal{3: d(-2)},
		Main: domain.TrackSettings{
			BaseYear1Payment: d(240_000),
			PaymentByYear:    map[int]decimal.Decimal{2: d(300_000)},
		},
	}
}

func TestApplyTransforms_DoesNotMutateBase(t *testing.T) {
	base := baseScenario()
	out, err := ApplyTransforms(base, []ScenarioTransform{
		&ScalePayments{Track: domain.TrackMain, Factor: d(2)},
		NewAddWithdrawal(domain.TrackMain, 5, d(50_000)),
	})
	require.NoError(t, err)

	assert.True(t, out.Main.BaseYear1Payment.Equal(d(480_000)))
	assert.True(t, out.Main.PaymentByYear[2].Equal(d(600_000)))
	assert.True(t, out.Main.WithdrawalByYear[5].Equal(d(50_000)))

	assert.True(t, base.Main.BaseYear1Payment.Equal(d(240_000)))
	assert.True(t, base.Main.PaymentByYear[2].Equal(d(300_000)))
	assert.Nil(t, base.Main.WithdrawalByYear)
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(nil, nil)
	assert.Error(t, err)

	_, err = ApplyTransforms(baseScenario(), []ScenarioTransform{nil})
	assert.Error(t, err)

	_, err = ApplyTransforms(baseScenario(), []ScenarioTransform{&SetDuration{Years: 0}})
	require.Error(t, err)
	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "set_duration", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
}

func TestTransforms(t *testing.T) {
	compound := true
	tests := []struct {
		name      string
		transform ScenarioTransform
		check     func(t *testing.T, s *domain.Scenario)
	}{
		{"set payment", &SetPayment{Track: domain.TrackMain, Amount: d(100_000)}, func(t *testing.T, s *domain.Scenario) {
			assert.True(t, s.Main.BaseYear1Payment.Equal(d(100_000)))
		}},
		{"set eseti payment creates track", &SetPayment{Track: domain.TrackEseti, Amount: d(50_000)}, func(t *testing.T, s *domain.Scenario) {
			require.NotNil(t, s.Eseti)
			assert.True(t, s.Eseti.BaseYear1Payment.Equal(d(50_000)))
		}},
		{"set index", &SetIndex{Track: domain.TrackMain, Percent: d(3), Compound: &compound}, func(t *testing.T, s *domain.Scenario) {
			assert.True(t, s.Main.BaseAnnualIndexPercent.Equal(d(3)))
			assert.True(t, s.Main.CompoundIndex)
		}},
		{"year payment", NewSetYearPayment(domain.TrackEseti, 4, d(1_000_000)), func(t *testing.T, s *domain.Scenario) {
			require.NotNil(t, s.Eseti)
			assert.True(t, s.Eseti.PaymentByYear[4].Equal(d(1_000_000)))
		}},
		{"set yield drops yearly", &SetYield{Percent: d(3)}, func(t *testing.T, s *domain.Scenario) {
			assert.True(t, s.AnnualYieldPercent.Equal(d(3)))
			assert.Nil(t, s.YieldByYear)
		}},
		{"set yield keeps yearly", &SetYield{Percent: d(3), KeepYearly: true}, func(t *testing.T, s *domain.Scenario) {
			assert.Len(t, s.YieldByYear, 1)
		}},
		{"extend", &ExtendDuration{Years: 5}, func(t *testing.T, s *domain.Scenario) {
			assert.Equal(t, 15, s.DurationYears)
		}},
		{"variant", &SetVariant{Variant: "pension_huf"}, func(t *testing.T, s *domain.Scenario) {
			assert.Equal(t, "pension_huf", s.Variant)
		}},
		{"corporate", &SetCorporate{Corporate: true}, func(t *testing.T, s *domain.Scenario) {
			assert.True(t, s.IsCorporate)
		}},
		{"tax credit", &SetTaxCredit{Enabled: true}, func(t *testing.T, s *domain.Scenario) {
			assert.True(t, s.TaxCredit.Enabled)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.transform.Description())
			out, err := ApplyTransforms(baseScenario(), []ScenarioTransform{tt.transform})
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestTransforms_Validate(t *testing.T) {
	tests := []struct {
		name      string
		transform ScenarioTransform
		wantErr   string
	}{
		{"negative payment", &SetPayment{Track: domain.TrackMain, Amount: d(-1)}, "non-negative"},
		{"unknown track", &SetPayment{Track: "side", Amount: d(1)}, "unknown track"},
		{"scale missing eseti", &ScalePayments{Track: domain.TrackEseti, Factor: d(2)}, "no eseti track"},
		{"index below -100", &SetIndex{Track: domain.TrackMain, Percent: d(-101)}, "below -100"},
		{"year out of range", NewSetYearPayment(domain.TrackMain, 12, d(1)), "year 12 outside 1..11"},
		{"withdraw missing eseti", NewAddWithdrawal(domain.TrackEseti, 1, d(1)), "no eseti track"},
		{"yield too high", &SetYield{Percent: d(150)}, "between -100 and 100"},
		{"shrink below one", &ExtendDuration{Years: -10}, "between 1 and 100"},
		{"empty variant", &SetVariant{}, "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(baseScenario())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("set_payment:track=eseti,amount=250000")
	require.NoError(t, err)
	sp, ok := tr.(*SetPayment)
	require.True(t, ok)
	assert.Equal(t, domain.TrackEseti, sp.Track)
	assert.True(t, sp.Amount.Equal(d(250_000)))

	tr, err = registry.ParseTransformSpec("set_index:percent=3.5,compound=yes")
	require.NoError(t, err)
	si := tr.(*SetIndex)
	assert.Equal(t, domain.TrackMain, si.Track)
	require.NotNil(t, si.Compound)
	assert.True(t, *si.Compound)

	tr, err = registry.ParseTransformSpec("set_corporate:")
	require.NoError(t, err)
	assert.True(t, tr.(*SetCorporate).Corporate)

	transforms, err := registry.ParseTransformSpecs([]string{"add_withdrawal:year=3,amount=10000", "extend_duration:years=2"})
	require.NoError(t, err)
	out, err := ApplyTransforms(baseScenario(), transforms)
	require.NoError(t, err)
	assert.Equal(t, 12, out.DurationYears)
	assert.True(t, out.Main.WithdrawalByYear[3].Equal(d(10_000)))

	assert.Contains(t, registry.List(), "set_yield")
	assert.True(t, strings.Compare(registry.List()[0], registry.List()[1]) < 0)
}

func TestRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry()
	specs := map[string]string{
		"set_payment":                  "expected 'name:params'",
		"nope:x=1":                     "unknown transform",
		"set_payment:amount":           "expected 'key=value'",
		"set_payment:track=main":       "requires 'amount'",
		"set_payment:amount=abc":       "invalid amount",
		"set_payment:track=x,amount=1": "invalid track",
		"set_duration:years=ten":       "invalid years",
		"set_tax_credit:enabled=maybe": "invalid enabled",
	}
	for spec, want := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := registry.ParseTransformSpec(spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}
