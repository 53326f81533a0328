// Package steps provides step definitions and dependency validation for the
// roadmap generation pipeline.
package steps

import (
	"fmt"
	"time"
)

// Step names, in execution order.
const (
	IngestJob       = "ingest_job"
	ResearchCompany = "research_company"
	BuildPrompt     = "build_prompt"
	GenerateRoadmap = "generate_roadmap"
	AssembleRoadmap = "assemble_roadmap"
	WriteArtifact   = "write_artifact"
)

// Step categories.
const (
	CategoryIngestion  = "ingestion"
	CategoryResearch   = "research"
	CategoryGeneration = "generation"
	CategoryOutput     = "output"
)

// Step statuses.
const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepResult records how one step finished.
type StepResult struct {
	Step     string        `json:"step"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	IngestJob: {
		Name:     IngestJob,
		Category: CategoryIngestion,
	},
	ResearchCompany: {
		Name:     ResearchCompany,
		Category: CategoryResearch,
	},
	BuildPrompt: {
		Name:         BuildPrompt,
		Category:     CategoryGeneration,
		Dependencies: []string{IngestJob},
		Optional:     []string{ResearchCompany},
	},
	GenerateRoadmap: {
		Name:         GenerateRoadmap,
		Category:     CategoryGeneration,
		Dependencies: []string{BuildPrompt},
	},
	AssembleRoadmap: {
		Name:         AssembleRoadmap,
		Category:     CategoryGeneration,
		Dependencies: []string{IngestJob},
		Optional:     []string{ResearchCompany, GenerateRoadmap},
	},
	WriteArtifact: {
		Name:         WriteArtifact,
		Category:     CategoryOutput,
		Dependencies: []string{AssembleRoadmap},
	},
}

// Order lists every step in the order the pipeline runs them.
func Order() []string {
	return []string{IngestJob, ResearchCompany, BuildPrompt, GenerateRoadmap, AssembleRoadmap, WriteArtifact}
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records step outcomes for one run.
type Tracker struct {
	results []StepResult
	status  map[string]string
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{status: make(map[string]string)}
}

// Record stores the outcome of a step. A non-nil err marks it failed.
func (t *Tracker) Record(step, status string, d time.Duration, err error) StepResult {
	result := StepResult{Step: step, Status: status, Duration: d}
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
	}
	t.status[step] = result.Status
	t.results = append(t.results, result)
	return result
}

// Status returns the recorded status of step, or "" if it has not run.
func (t *Tracker) Status(step string) string {
	return t.status[step]
}

// Results returns the recorded outcomes in the order they were recorded.
func (t *Tracker) Results() []StepResult {
	out := make([]StepResult, len(t.results))
	copy(out, t.results)
	return out
}

// ValidateDependencies checks that every required dependency of stepName
// completed or was deliberately skipped. Optional dependencies are not checked.
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		switch t.status[dep] {
		case StatusCompleted, StatusSkipped:
		default:
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
