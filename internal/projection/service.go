package projection

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/aggregate"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/calculation"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/netting"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/plan"
)

// Service runs the full pipeline: plan, engine per track, merge,
// cumulative totals, netting
type Service struct {
	Engine *calculation.Engine
}

// NewService creates a service over the given engine; nil uses the default engine.
func NewService(engine *calculation.Engine) *Service {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return &Service{Engine: engine}
}

// BuildInputs resolves the engine inputs and the yearly plan of one track.
// The plan covers every projection period, so a calendar-mode policy with
// stub periods gets one more plan year than its duration.
func BuildInputs(s *domain.Scenario, track domain.Track) (domain.DailyInputs, domain.YearlyPlan) {
	in := domain.DailyInputs{
		Currency:             s.Currency,
		DurationYears:        s.DurationYears,
		StartDate:            s.StartDate,
		CalendarMode:         s.CalendarMode,
		Track:                track,
		VariantID:            s.Variant,
		AnnualYieldPercent:   s.AnnualYieldPercent,
		YieldByYear:          s.YieldByYear,
		Fees:                 s.FeesFor(track),
		InvestedSharePercent: s.InvestedSharePercent,
	}

	// policy-level charges and credits belong to the main track
	if track == domain.TrackMain {
		in.TaxCredit = s.TaxCredit
		in.RiskInsurance = s.RiskInsurance
	}
	for _, entry := range s.CustomEntries {
		if entryTrack(entry) == track {
			in.CustomEntries = append(in.CustomEntries, entry)
		}
	}

	var settings domain.TrackSettings
	if ts := s.TrackSettingsFor(track); ts != nil {
		settings = *ts
	}
	planSettings := settings.PlanSettings(len(calculation.Periods(in)))
	yearly := plan.BuildYearlyPlan(planSettings)

	in.PaymentsByYear = yearly.YearlyPaymentsPlan
	if settings.CompoundIndex {
		in.PaymentsByYear = plan.IndexedPayments(planSettings, yearly)
	}
	in.WithdrawalsByYear = yearly.YearlyWithdrawalsPlan
	return in, yearly
}

// entryTrack returns the track a custom entry is charged on. Only entries
// addressed to the eseti account run on the eseti track.
func entryTrack(entry domain.CustomEntryDefinition) domain.Track {
	if entry.Account == domain.AccountEseti {
		return domain.TrackEseti
	}
	return domain.TrackMain
}

// Run projects a scenario. It checks ctx between stages.
func (s *Service) Run(ctx context.Context, scenario *domain.Scenario) (*Result, error) {
	if scenario == nil {
		return nil, errors.New("scenario cannot be nil")
	}
	logger := s.Engine.Logger

	result := &Result{
		ScenarioName: scenario.Name,
		ProductID:    scenario.Product,
		VariantID:    scenario.Variant,
		IsCorporate:  scenario.IsCorporate,
	}

	tracks := []domain.Track{domain.TrackMain}
	if scenario.HasEseti() {
		tracks = append(tracks, domain.TrackEseti)
	}

	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in, yearly := BuildInputs(scenario, track)
		calc, err := s.Engine.Calculate(scenario.Product, in)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s track: %w", track, err)
		}
		tr := TrackResult{Track: track, Plan: yearly, Calculation: calc}
		if track == domain.TrackEseti {
			result.Eseti = &tr
		} else {
			result.Main = tr
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Rows = aggregate.MergeTracks(result.Main.Rows(), result.Eseti.Rows())
	result.Cumulative = aggregate.BuildCumulativeByYear(aggregate.RowPointers(result.Rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Main.NetRows = netting.CalculateNetValuesMain(result.Main.Rows(), scenario.IsCorporate)
	var esetiNet []domain.NetRow
	if result.Eseti != nil {
		result.Eseti.NetRows = netting.CalculateNetValuesEseti(result.Eseti.Rows(), scenario.IsCorporate)
		esetiNet = result.Eseti.NetRows
	}
	result.NetRows = netting.CombineNetRows(result.Main.NetRows, esetiNet)
	result.Summary = summarize(result)

	logger.Infof("projected %q: %d periods, end balance %s, net %s",
		scenario.Name, result.Summary.Periods,
		result.Summary.EndBalance.StringFixed(0), result.Summary.NetBalance.StringFixed(0))
	return result, nil
}

// NetValues nets externally supplied rows of one track.
func NetValues(track domain.Track, rows []domain.YearRow, isCorporate bool) []domain.NetRow {
	if track == domain.TrackEseti {
		return netting.CalculateNetValuesEseti(rows, isCorporate)
	}
	return netting.CalculateNetValuesMain(rows, isCorporate)
}
