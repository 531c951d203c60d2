package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// payments
	registry.Register("set_payment", createSetPayment)
	registry.Register("scale_payments", createScalePayments)
	registry.Register("set_index", createSetIndex)
	registry.Register("set_year_payment", createSetYearPayment)
	registry.Register("add_withdrawal", createAddWithdrawal)

	// policy
	registry.Register("set_yield", createSetYield)
	registry.Register("set_duration", createSetDuration)
	registry.Register("extend_duration", createExtendDuration)
	registry.Register("set_variant", createSetVariant)
	registry.Register("set_corporate", createSetCorporate)
	registry.Register("set_tax_credit", createSetTaxCredit)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_payment:track=main,amount=300000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses every spec in order.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ScenarioTransform, error) {
	transforms := make([]ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func boolParam(params map[string]string, key string, def bool) (bool, error) {
	s, ok := params[key]
	if !ok {
		return def, nil
	}
	switch strings.ToLower(s) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s value: %q", key, s)
	}
}

// trackParam reads the optional track parameter; main is the default.
func trackParam(params map[string]string) (domain.Track, error) {
	s, ok := params["track"]
	if !ok || s == "" {
		return domain.TrackMain, nil
	}
	track := domain.Track(strings.ToLower(s))
	switch track {
	case domain.TrackMain, domain.TrackEseti:
		return track, nil
	default:
		return "", fmt.Errorf("invalid track value: %q", s)
	}
}

func createSetPayment(params map[string]string) (ScenarioTransform, error) {
	track, err := trackParam(params)
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("set_payment", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetPayment{Track: track, Amount: amount}, nil
}

func createScalePayments(params map[string]string) (ScenarioTransform, error) {
	track, err := trackParam(params)
	if err != nil {
		return nil, err
	}
	factor, err := decimalParam("scale_payments", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScalePayments{Track: track, Factor: factor}, nil
}

func createSetIndex(params map[string]string) (ScenarioTransform, error) {
	track, err := trackParam(params)
	if err != nil {
		return nil, err
	}
	percent, err := decimalParam("set_index", params, "percent")
	if err != nil {
		return nil, err
	}
	si := &SetIndex{Track: track, Percent: percent}
	if _, ok := params["compound"]; ok {
		compound, err := boolParam(params, "compound", false)
		if err != nil {
			return nil, err
		}
		si.Compound = &compound
	}
	return si, nil
}

func yearAmountParams(transform string, params map[string]string) (yearAmount, error) {
	track, err := trackParam(params)
	if err != nil {
		return yearAmount{}, err
	}
	year, err := intParam(transform, params, "year")
	if err != nil {
		return yearAmount{}, err
	}
	amount, err := decimalParam(transform, params, "amount")
	if err != nil {
		return yearAmount{}, err
	}
	return yearAmount{Track: track, Year: year, Amount: amount}, nil
}

func createSetYearPayment(params map[string]string) (ScenarioTransform, error) {
	ya, err := yearAmountParams("set_year_payment", params)
	if err != nil {
		return nil, err
	}
	return &SetYearPayment{ya}, nil
}

func createAddWithdrawal(params map[string]string) (ScenarioTransform, error) {
	ya, err := yearAmountParams("add_withdrawal", params)
	if err != nil {
		return nil, err
	}
	return &AddWithdrawal{ya}, nil
}

func createSetYield(params map[string]string) (ScenarioTransform, error) {
	percent, err := decimalParam("set_yield", params, "percent")
	if err != nil {
		return nil, err
	}
	keep, err := boolParam(params, "keep_yearly", false)
	if err != nil {
		return nil, err
	}
	return &SetYield{Percent: percent, KeepYearly: keep}, nil
}

func createSetDuration(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("set_duration", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetDuration{Years: years}, nil
}

func createExtendDuration(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("extend_duration", params, "years")
	if err != nil {
		return nil, err
	}
	return &ExtendDuration{Years: years}, nil
}

func createSetVariant(params map[string]string) (ScenarioTransform, error) {
	variant, err := requireParam("set_variant", params, "variant")
	if err != nil {
		return nil, err
	}
	return &SetVariant{Variant: variant}, nil
}

func createSetCorporate(params map[string]string) (ScenarioTransform, error) {
	corporate, err := boolParam(params, "enabled", true)
	if err != nil {
		return nil, err
	}
	return &SetCorporate{Corporate: corporate}, nil
}

func createSetTaxCredit(params map[string]string) (ScenarioTransform, error) {
	enabled, err := boolParam(params, "enabled", true)
	if err != nil {
		return nil, err
	}
	return &SetTaxCredit{Enabled: enabled}, nil
}
