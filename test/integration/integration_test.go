package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/compare"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/output"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/session"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadExample(t *testing.T) *config.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "..", "testdata", "example_scenario.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestEndToEndProjection(t *testing.T) {
	cfg := loadExample(t)
	service := projection.NewService(nil)

	for _, name := range cfg.Names() {
		t.Run(name, func(t *testing.T) {
			scenario, err := cfg.Scenario(name)
			require.NoError(t, err)

			result, err := service.Run(context.Background(), scenario)
			require.NoError(t, err)
			require.NotEmpty(t, result.Rows)
			assert.Len(t, result.NetRows, len(result.Rows))

			for i, row := range result.Rows {
				assert.Equal(t, i+1, row.Year, "rows are numbered from 1")
				if i > 0 {
					prev := result.Rows[i-1]
					assert.True(t, row.TotalContributions.GreaterThanOrEqual(prev.TotalContributions),
						"cumulative contributions never fall (year %d)", row.Year)
				}
			}

			last := result.Rows[len(result.Rows)-1]
			assert.True(t, result.Summary.EndBalance.Equal(last.EndBalance))
			assert.True(t, result.Summary.TotalContributions.Equal(last.TotalContributions))
			assert.Equal(t, scenario.HasEseti(), result.Eseti != nil)
		})
	}
}

func TestDataConsistency(t *testing.T) {
	cfg := loadExample(t)
	scenario, err := cfg.Scenario("base")
	require.NoError(t, err)

	service := projection.NewService(nil)
	first, err := service.Run(context.Background(), scenario)
	require.NoError(t, err)
	second, err := service.Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.True(t, first.Summary.NetBalance.Equal(second.Summary.NetBalance), "runs are deterministic")
	assert.True(t, first.Summary.TotalCosts.Equal(second.Summary.TotalCosts))
}

func TestOutputGeneration(t *testing.T) {
	cfg := loadExample(t)
	scenario, err := cfg.Scenario("")
	require.NoError(t, err)
	result, err := projection.NewService(nil).Run(context.Background(), scenario)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			data, err := f.Format(result)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestTemplatesAgainstBase(t *testing.T) {
	cfg := loadExample(t)
	set, err := compare.NewCompareEngine(nil).Compare(context.Background(), cfg, compare.CompareOptions{
		Templates: []string{"yield_low", "yield_high"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	low, high := set.AlternativeResults[0], set.AlternativeResults[1]
	assert.Equal(t, "base_yield_low", low.ScenarioName)
	assert.True(t, high.NetBalance.GreaterThan(low.NetBalance), "a higher yield ends with more")
	assert.NotEmpty(t, set.Recommendations)
}

func TestTransformedScenarioStillValid(t *testing.T) {
	cfg := loadExample(t)
	base, err := cfg.Scenario("base")
	require.NoError(t, err)

	transforms, err := transform.NewTransformRegistry().ParseTransformSpecs([]string{
		"extend_duration:years=5",
		"add_withdrawal:track=eseti,year=18,amount=100000",
	})
	require.NoError(t, err)
	modified, err := transform.ApplyTransforms(base, transforms)
	require.NoError(t, err)
	require.NoError(t, config.NewInputParser().ValidateScenario(modified))

	result, err := projection.NewService(nil).Run(context.Background(), modified)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 20)
	assert.Equal(t, 15, base.DurationYears, "base scenario is untouched")
}

func TestSessionOverridesPersist(t *testing.T) {
	cfg := loadExample(t)
	base, err := cfg.Scenario("base")
	require.NoError(t, err)

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.NewSQLiteStore(path)
	require.NoError(t, err)
	sess := session.New(store, "integration")
	require.NoError(t, sess.Hydrate(ctx))
	require.NoError(t, sess.SetOverride(ctx, domain.TrackMain, session.FieldPayment, 2, decimal.Zero))
	require.NoError(t, store.Close())

	reopened, err := session.NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	restored := session.New(reopened, "integration")
	require.NoError(t, restored.Hydrate(ctx))

	service := projection.NewService(nil)
	plain, err := service.Run(ctx, base)
	require.NoError(t, err)
	overridden, err := service.Run(ctx, restored.Apply(base))
	require.NoError(t, err)

	assert.True(t, overridden.Summary.TotalContributions.LessThan(plain.Summary.TotalContributions),
		"skipping the year 2 payment lowers contributions")
}
