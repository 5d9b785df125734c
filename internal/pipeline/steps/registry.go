// Package steps provides step definitions, dependency validation, and the per-run
// step trace for the extraction pipeline.
package steps

import (
	"fmt"
	"sync"
	"time"
)

// Step names
const (
	Decode            = "decode"
	Analyze           = "analyze_resume"
	HeuristicFallback = "heuristic_fallback"
	Enhance           = "enhance_extraction"
	Summary           = "generate_summary"
	ATSScore          = "ats_score"
	SkillsScore       = "skills_score"
)

// Step categories
const (
	CategoryInput      = "input"
	CategoryAnalysis   = "analysis"
	CategoryEnrichment = "enrichment"
)

// Step statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	Decode: {
		Name:         Decode,
		Category:     CategoryInput,
		Dependencies: []string{},
	},
	Analyze: {
		Name:         Analyze,
		Category:     CategoryAnalysis,
		Dependencies: []string{Decode},
	},
	HeuristicFallback: {
		Name:         HeuristicFallback,
		Category:     CategoryAnalysis,
		Dependencies: []string{Decode},
	},
	Enhance: {
		Name:         Enhance,
		Category:     CategoryAnalysis,
		Dependencies: []string{Analyze},
	},
	Summary: {
		Name:         Summary,
		Category:     CategoryEnrichment,
		Dependencies: []string{Analyze},
		Optional:     []string{Enhance},
	},
	ATSScore: {
		Name:         ATSScore,
		Category:     CategoryEnrichment,
		Dependencies: []string{Analyze},
		Optional:     []string{Enhance},
	},
	SkillsScore: {
		Name:         SkillsScore,
		Category:     CategoryEnrichment,
		Dependencies: []string{Analyze},
		Optional:     []string{Enhance},
	},
}

// StepResult represents the result of executing a step
type StepResult struct {
	Step     string `json:"step"`
	Status   string `json:"status"`
	Duration int64  `json:"duration_ms"`
	Error    string `json:"error,omitempty"`
}

// Trace records step results for one document in execution order.
type Trace struct {
	mu      sync.Mutex
	results []StepResult
}

// Record appends the outcome of a step that started at start.
func (t *Trace) Record(step, status string, start time.Time, err error) StepResult {
	res := StepResult{
		Step:     step,
		Status:   status,
		Duration: time.Since(start).Milliseconds(),
	}
	if err != nil {
		res.Error = err.Error()
	}

	t.mu.Lock()
	t.results = append(t.results, res)
	t.mu.Unlock()
	return res
}

// Results returns a copy of the recorded results.
func (t *Trace) Results() []StepResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]StepResult, len(t.results))
	copy(out, t.results)
	return out
}

// Status returns the last recorded status of step, or "" if it never ran.
func (t *Trace) Status(step string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.results) - 1; i >= 0; i-- {
		if t.results[i].Step == step {
			return t.results[i].Status
		}
	}
	return ""
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a step are completed in the trace
func ValidateDependencies(trace *Trace, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if trace.Status(dep) != StatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}
