package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrNoScenario is returned when a file holds no scenario or the requested one is missing
var ErrNoScenario = errors.New("no scenario")

const maxDurationYears = 100

var hundred = decimal.NewFromInt(100)

// Configuration is the content of a scenario file
type Configuration struct {
	Scenarios []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario returns the named scenario, or the first one when name is empty.
func (c *Configuration) Scenario(name string) (*domain.Scenario, error) {
	if len(c.Scenarios) == 0 {
		return nil, ErrNoScenario
	}
	if name == "" {
		return &c.Scenarios[0], nil
	}
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoScenario, name)
}

// Names lists the scenario names in file order.
func (c *Configuration) Names() []string {
	names := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		names = append(names, s.Name)
	}
	return names
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML scenario file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario YAML. A document holding a single
// scenario at the top level is accepted as well as a scenarios list.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(config.Scenarios) == 0 {
		var single domain.Scenario
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if single.Product != "" {
			config.Scenarios = []domain.Scenario{single}
		}
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates every scenario and fills optional defaults
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if len(config.Scenarios) == 0 {
		return ErrNoScenario
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		s := &config.Scenarios[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("Scenario %d", i+1)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true

		if err := ip.ValidateScenario(s); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, s.Name, err)
		}
	}
	return nil
}

// ValidateScenario validates a single scenario, normalizes codes and assigns
// ids to custom entries that have none
func (ip *InputParser) ValidateScenario(s *domain.Scenario) error {
	id, err := product.ParseID(s.Product)
	if err != nil {
		return fmt.Errorf("product: %w", err)
	}
	s.Product = string(id)

	if s.DurationYears < 1 || s.DurationYears > maxDurationYears {
		return fmt.Errorf("duration_years must be between 1 and %d, got %d", maxDurationYears, s.DurationYears)
	}

	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	switch s.Currency {
	case "", "HUF", "EUR", "USD":
	default:
		return fmt.Errorf("unsupported currency %q", s.Currency)
	}

	if s.CalendarMode && s.StartDate == nil {
		return fmt.Errorf("calendar_mode requires start_date")
	}

	// a calendar-mode policy can span one period more than its duration
	maxYear := s.DurationYears + 1

	if err := validateYearMap("yield_by_year", s.YieldByYear, maxYear, false); err != nil {
		return err
	}
	if err := validateTrack("main", &s.Main, maxYear); err != nil {
		return err
	}
	if s.Eseti != nil {
		if err := validateTrack("eseti", s.Eseti, maxYear); err != nil {
			return err
		}
	}
	if err := validateFees("fees", s.Fees, maxYear); err != nil {
		return err
	}
	if err := validateFees("eseti_fees", s.EsetiFees, maxYear); err != nil {
		return err
	}

	if s.InvestedSharePercent != nil {
		if err := validatePercent("invested_share_percent", *s.InvestedSharePercent); err != nil {
			return err
		}
	}

	if s.TaxCredit.Enabled {
		if err := validatePercent("tax_credit.rate_percent", s.TaxCredit.RatePercent); err != nil {
			return err
		}
		if s.TaxCredit.CapPerYear.IsNegative() {
			return fmt.Errorf("tax_credit.cap_per_year cannot be negative")
		}
	}

	if s.RiskInsurance.Enabled && s.RiskInsurance.AnnualFee.IsNegative() {
		return fmt.Errorf("risk_insurance.annual_fee cannot be negative")
	}

	return validateCustomEntries(s.CustomEntries)
}

func validateTrack(name string, ts *domain.TrackSettings, maxYear int) error {
	if ts.BaseYear1Payment.IsNegative() {
		return fmt.Errorf("%s.base_year1_payment cannot be negative", name)
	}
	if err := validateYearMap(name+".index_by_year", ts.IndexByYear, maxYear, false); err != nil {
		return err
	}
	if err := validateYearMap(name+".payment_by_year", ts.PaymentByYear, maxYear, true); err != nil {
		return err
	}
	return validateYearMap(name+".withdrawal_by_year", ts.WithdrawalByYear, maxYear, true)
}

func validateFees(name string, fees domain.FeeOverrides, maxYear int) error {
	maps := map[string]map[int]decimal.Decimal{
		"upfront_cost_percent_by_year":        fees.UpfrontCostPercentByYear,
		"admin_fee_by_year":                   fees.AdminFeeByYear,
		"account_maintenance_percent_by_year": fees.AccountMaintenancePercentByYear,
		"asset_based_fee_percent_by_year":     fees.AssetBasedFeePercentByYear,
		"plus_cost_by_year":                   fees.PlusCostByYear,
		"bonus_percent_by_year":               fees.BonusPercentByYear,
		"surrender_charge_percent_by_year":    fees.SurrenderChargePercentByYear,
	}
	for key, m := range maps {
		if err := validateYearMap(name+"."+key, m, maxYear, true); err != nil {
			return err
		}
	}
	if fees.AdminFeeMonthly != nil && fees.AdminFeeMonthly.IsNegative() {
		return fmt.Errorf("%s.admin_fee_monthly cannot be negative", name)
	}
	if fees.ManagementFeePercent != nil {
		if err := validatePercent(name+".management_fee_percent", *fees.ManagementFeePercent); err != nil {
			return err
		}
	}
	return nil
}

func validateYearMap(name string, m map[int]decimal.Decimal, maxYear int, nonNegative bool) error {
	for year, v := range m {
		if year < 1 || year > maxYear {
			return fmt.Errorf("%s: year %d outside 1..%d", name, year, maxYear)
		}
		if nonNegative && v.IsNegative() {
			return fmt.Errorf("%s: year %d cannot be negative", name, year)
		}
	}
	return nil
}

func validatePercent(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return fmt.Errorf("%s must be between 0 and 100, got %s", name, v.String())
	}
	return nil
}

func validateCustomEntries(entries []domain.CustomEntryDefinition) error {
	ids := make(map[string]bool, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if ids[e.ID] {
			return fmt.Errorf("custom entry %d: duplicate id %q", i, e.ID)
		}
		ids[e.ID] = true

		switch e.Kind {
		case domain.EntryCost, domain.EntryBonus:
		default:
			return fmt.Errorf("custom entry %s: invalid kind %q", e.ID, e.Kind)
		}
		switch e.ValueType {
		case domain.ValuePercent, domain.ValueAmount:
		default:
			return fmt.Errorf("custom entry %s: invalid value_type %q", e.ID, e.ValueType)
		}
		switch e.Account {
		case domain.AccountClient, domain.AccountInvested, domain.AccountTaxBonus, domain.AccountMain, domain.AccountEseti:
		default:
			return fmt.Errorf("custom entry %s: invalid account %q", e.ID, e.Account)
		}
		switch e.Frequency {
		case "", domain.FrequencyYearly, domain.FrequencyMonthly:
		default:
			return fmt.Errorf("custom entry %s: invalid frequency %q", e.ID, e.Frequency)
		}
		if e.StartYear > 0 && e.StopYear > 0 && e.StopYear < e.StartYear {
			return fmt.Errorf("custom entry %s: stop_year %d before start_year %d", e.ID, e.StopYear, e.StartYear)
		}
		if e.Value.IsNegative() {
			return fmt.Errorf("custom entry %s: value cannot be negative", e.ID)
		}
	}
	return nil
}
