package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Field names a per-year override map of a track
type Field string

const (
	FieldPayment    Field = "payment_by_year"
	FieldIndex      Field = "index_by_year"
	FieldWithdrawal Field = "withdrawal_by_year"
)

// Fields lists the persisted override fields.
func Fields() []Field {
	return []Field{FieldPayment, FieldIndex, FieldWithdrawal}
}

// ParseField validates a field name.
func ParseField(raw string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown override field %q", raw)
}

// Overrides maps "track.field" to its per-year values
type Overrides map[string]map[int]decimal.Decimal

// Session holds the user's per-year overrides. It reads the store once
// and writes through only when a value actually changes.
type Session struct {
	store Store
	id    string

	mu        sync.Mutex
	hydrated  bool
	overrides Overrides
}

// New creates a session over store. id namespaces the keys.
func New(store Store, id string) *Session {
	if id == "" {
		id = "default"
	}
	return &Session{store: store, id: id, overrides: make(Overrides)}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

func overrideName(track domain.Track, field Field) string {
	return string(track) + "." + string(field)
}

func (s *Session) key(track domain.Track, field Field) string {
	return s.id + "/" + overrideName(track, field)
}

// Hydrate loads every override map from the store. Only the first call
// reads; later calls are no-ops.
func (s *Session) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrateLocked(ctx)
}

func (s *Session) hydrateLocked(ctx context.Context) error {
	if s.hydrated {
		return nil
	}
	for _, track := range []domain.Track{domain.TrackMain, domain.TrackEseti} {
		for _, field := range Fields() {
			raw, err := s.store.Get(ctx, s.key(track, field))
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var values map[int]decimal.Decimal
			if err := json.Unmarshal([]byte(raw), &values); err != nil {
				return fmt.Errorf("corrupt session value %s: %w", s.key(track, field), err)
			}
			if len(values) > 0 {
				s.overrides[overrideName(track, field)] = values
			}
		}
	}
	s.hydrated = true
	return nil
}

// SetOverride stores one per-year value. Setting an unchanged value does
// not touch the store.
func (s *Session) SetOverride(ctx context.Context, track domain.Track, field Field, year int, value decimal.Decimal) error {
	if year < 1 {
		return fmt.Errorf("year must be positive, got %d", year)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrateLocked(ctx); err != nil {
		return err
	}

	name := overrideName(track, field)
	values := s.overrides[name]
	if current, ok := values[year]; ok && current.Equal(value) {
		return nil
	}
	next := cloneValues(values)
	next[year] = value
	if err := s.write(ctx, track, field, next); err != nil {
		return err
	}
	s.overrides[name] = next
	return nil
}

// ClearOverride removes the value of one year, or the whole map when
// year is 0.
func (s *Session) ClearOverride(ctx context.Context, track domain.Track, field Field, year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrateLocked(ctx); err != nil {
		return err
	}

	name := overrideName(track, field)
	values, ok := s.overrides[name]
	if !ok {
		return nil
	}
	if year == 0 {
		if err := s.store.Remove(ctx, s.key(track, field)); err != nil {
			return err
		}
		delete(s.overrides, name)
		return nil
	}
	if _, ok := values[year]; !ok {
		return nil
	}
	next := cloneValues(values)
	delete(next, year)
	if len(next) == 0 {
		if err := s.store.Remove(ctx, s.key(track, field)); err != nil {
			return err
		}
		delete(s.overrides, name)
		return nil
	}
	if err := s.write(ctx, track, field, next); err != nil {
		return err
	}
	s.overrides[name] = next
	return nil
}

func (s *Session) write(ctx context.Context, track domain.Track, field Field, values map[int]decimal.Decimal) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", overrideName(track, field), err)
	}
	return s.store.Set(ctx, s.key(track, field), string(raw))
}

// Overrides returns a copy of the hydrated overrides.
func (s *Session) Overrides() Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Overrides, len(s.overrides))
	for name, values := range s.overrides {
		out[name] = cloneValues(values)
	}
	return out
}

// Names returns the override names in sorted order.
func (o Overrides) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of the scenario with the session overrides merged
// over its own per-year maps. An eseti override creates the eseti track
// when the scenario has none.
func (s *Session) Apply(scenario *domain.Scenario) *domain.Scenario {
	out := scenario.Clone()
	if out == nil {
		return nil
	}
	overrides := s.Overrides()

	for _, track := range []domain.Track{domain.TrackMain, domain.TrackEseti} {
		for _, field := range Fields() {
			values, ok := overrides[overrideName(track, field)]
			if !ok {
				continue
			}
			if track == domain.TrackEseti && out.Eseti == nil {
				out.Eseti = &domain.TrackSettings{}
			}
			ts := out.TrackSettingsFor(track)
			target := fieldMap(ts, field)
			if *target == nil {
				*target = make(map[int]decimal.Decimal, len(values))
			}
			for year, v := range values {
				(*target)[year] = v
			}
		}
	}
	return out
}

func fieldMap(ts *domain.TrackSettings, field Field) *map[int]decimal.Decimal {
	switch field {
	case FieldIndex:
		return &ts.IndexByYear
	case FieldWithdrawal:
		return &ts.WithdrawalByYear
	default:
		return &ts.PaymentByYear
	}
}

func cloneValues(m map[int]decimal.Decimal) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
