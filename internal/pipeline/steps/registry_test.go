package steps

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{Decode, Analyze, HeuristicFallback, Enhance, Summary, ATSScore, SkillsScore}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryInput:      {Decode},
		CategoryAnalysis:   {Analyze, HeuristicFallback, Enhance},
		CategoryEnrichment: {Summary, ATSScore, SkillsScore},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			def, ok := StepRegistry[stepName]
			require.True(t, ok)
			assert.Equal(t, category, def.Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestStepRegistry_DependenciesAreKnown(t *testing.T) {
	for name, def := range StepRegistry {
		for _, dep := range append(append([]string{}, def.Dependencies...), def.Optional...) {
			_, ok := StepRegistry[dep]
			assert.True(t, ok, "step %s depends on unknown step %s", name, dep)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Equal(t, "test_step", err.Step)
	assert.Equal(t, []string{"dep1", "dep2"}, err.MissingDependencies)
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := ValidateDependencies(&Trace{}, "unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestValidateDependencies(t *testing.T) {
	trace := &Trace{}
	start := time.Now()

	var depErr *DependencyError
	require.ErrorAs(t, ValidateDependencies(trace, Analyze), &depErr)
	assert.Equal(t, []string{Decode}, depErr.MissingDependencies)

	trace.Record(Decode, StatusCompleted, start, nil)
	assert.NoError(t, ValidateDependencies(trace, Analyze))

	trace.Record(Analyze, StatusFailed, start, errors.New("quota"))
	require.ErrorAs(t, ValidateDependencies(trace, Summary), &depErr)
	assert.Equal(t, Summary, depErr.Step)
}

func TestTrace(t *testing.T) {
	trace := &Trace{}
	start := time.Now()

	trace.Record(Decode, StatusCompleted, start, nil)
	res := trace.Record(Analyze, StatusFailed, start, errors.New("quota exceeded"))
	assert.Equal(t, "quota exceeded", res.Error)
	assert.GreaterOrEqual(t, res.Duration, int64(0))

	results := trace.Results()
	require.Len(t, results, 2)
	assert.Equal(t, Decode, results[0].Step)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, StatusFailed, trace.Status(Analyze))
	assert.Equal(t, "", trace.Status(Summary))

	trace.Record(Analyze, StatusCompleted, start, nil)
	assert.Equal(t, StatusCompleted, trace.Status(Analyze))

	results[0].Step = "mutated"
	assert.Equal(t, Decode, trace.Results()[0].Step)
}
