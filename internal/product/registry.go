package product

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ID is the closed set of product identifiers
type ID string

const (
	GenericUnitLinked    ID = "generic_unit_linked"
	GenericPension       ID = "generic_pension"
	GenericSinglePremium ID = "generic_single_premium"
)

// ErrUnknownProduct is returned for ids outside the registry
var ErrUnknownProduct = errors.New("unknown product")

// ErrUnknownVariant is returned when a product cannot resolve the requested variant
var ErrUnknownVariant = errors.New("unknown variant")

// ErrDurationTooShort is returned when the duration is below the variant minimum
var ErrDurationTooShort = errors.New("duration too short")

// KnownIDs lists every product id in display order.
func KnownIDs() []ID {
	return []ID{GenericUnitLinked, GenericPension, GenericSinglePremium}
}

// ParseID validates a raw product id against the closed enumeration.
func ParseID(raw string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range KnownIDs() {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProduct, raw)
}

// VariantOptions selects a variant of a product
type VariantOptions struct {
	VariantID     string
	Currency      string
	DurationYears int
}

// Description is the catalogue entry of a product
type Description struct {
	ID             ID       `json:"id"`
	Name           string   `json:"name"`
	Summary        string   `json:"summary"`
	DefaultVariant string   `json:"defaultVariant"`
	Variants       []string `json:"variants"`
}

// Resolver turns variant options into a concrete variant for one product
type Resolver interface {
	Resolve(opts VariantOptions) (Variant, error)
	Describe() Description
}

// Registry maps product ids to their variant resolution strategy
type Registry struct {
	resolvers map[ID]Resolver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[ID]Resolver)}
}

// DefaultRegistry returns a registry with the built-in products registered.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(GenericUnitLinked, unitLinkedProduct())
	registry.Register(GenericPension, pensionProduct())
	registry.Register(GenericSinglePremium, singlePremiumProduct())
	return registry
}

// Register adds or replaces the resolver of a product.
func (r *Registry) Register(id ID, resolver Resolver) {
	r.resolvers[id] = resolver
}

// Lookup returns the resolver registered for an id.
func (r *Registry) Lookup(id ID) (Resolver, error) {
	resolver, ok := r.resolvers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return resolver, nil
}

// Resolve looks up the product and resolves the variant in one step.
func (r *Registry) Resolve(id ID, opts VariantOptions) (Variant, error) {
	resolver, err := r.Lookup(id)
	if err != nil {
		return Variant{}, err
	}
	variant, err := resolver.Resolve(opts)
	if err != nil {
		return Variant{}, fmt.Errorf("product %s: %w", id, err)
	}
	return variant, nil
}

// IDs returns the registered ids sorted.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.resolvers))
	for id := range r.resolvers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Catalog describes every registered product sorted by id.
func (r *Registry) Catalog() []Description {
	out := make([]Description, 0, len(r.resolvers))
	for _, id := range r.IDs() {
		out = append(out, r.resolvers[id].Describe())
	}
	return out
}
