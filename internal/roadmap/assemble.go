package roadmap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/interview-roadmap/internal/extraction"
	"github.com/jonathan/interview-roadmap/internal/skills"
	"github.com/jonathan/interview-roadmap/internal/types"
)

// Source records where a roadmap came from.
type Source string

// Roadmap sources.
const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Input is everything the assembler needs for one run.
// A nil SearchSummary or ModelText means that collaborator produced nothing.
type Input struct {
	Company       string
	Role          string
	JDText        string
	SearchSummary *string
	ModelText     *string
}

// Outcome is the assembled roadmap and how it was produced.
type Outcome struct {
	Roadmap         types.Roadmap
	Source          Source
	Warnings        []Warning
	Reason          error // why the fallback was used; nil for model roadmaps
	KeySkills       []string
	SearchAvailable bool
}

// Assembler merges job-description evidence with model output.
type Assembler struct {
	validator *Validator
	now       func() time.Time
	logger    *slog.Logger
}

// NewAssembler creates an Assembler. The validator's clock also stamps fallback records.
func NewAssembler(validator *Validator, logger *slog.Logger) *Assembler {
	if validator == nil {
		validator = NewValidator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		validator: validator,
		now:       validator.now,
		logger:    logger,
	}
}

// Assemble makes exactly one attempt to use the model text and otherwise
// returns the fallback roadmap. It always returns a complete record.
func (a *Assembler) Assemble(in Input) Outcome {
	keySkills := skills.ExtractKeySkills(in.JDText)
	searchAvailable := in.SearchSummary != nil && strings.TrimSpace(*in.SearchSummary) != ""

	validated, err := a.fromModel(in, keySkills)
	if err != nil {
		a.logFallback(err)
		return Outcome{
			Roadmap:         Fallback(in.Company, in.Role, keySkills, a.now()),
			Source:          SourceFallback,
			Reason:          err,
			KeySkills:       keySkills,
			SearchAvailable: searchAvailable,
		}
	}

	record, identityWarnings := pinIdentity(validated.Roadmap, in.Company, in.Role)
	warnings := append(validated.Warnings, identityWarnings...)
	for _, w := range warnings {
		a.logger.Warn("roadmap validation warning", "field", w.Field, "message", w.Message)
	}

	return Outcome{
		Roadmap:         record,
		Source:          SourceModel,
		Warnings:        warnings,
		KeySkills:       keySkills,
		SearchAvailable: searchAvailable,
	}
}

func (a *Assembler) fromModel(in Input, keySkills []string) (*Validated, error) {
	if in.ModelText == nil {
		return nil, ErrNoModelOutput
	}

	obj, err := extraction.Extract(*in.ModelText)
	if err != nil {
		return nil, err
	}

	return a.validator.Validate(withSkills(obj, keySkills))
}

func (a *Assembler) logFallback(err error) {
	var malformed *extraction.MalformedError
	var invalid *ValidationError
	switch {
	case errors.As(err, &malformed):
		a.logger.Warn("model output had no usable JSON, using fallback roadmap",
			"reason", malformed.Reason, "raw", malformed.Snippet())
	case errors.As(err, &invalid):
		a.logger.Warn("model roadmap failed validation, using fallback roadmap",
			"kind", string(invalid.Kind), "field", invalid.Field, "error", invalid.Message)
	default:
		a.logger.Warn("using fallback roadmap", "error", err)
	}
}

// withSkills returns a shallow copy of obj whose evidence.key_skills also
// lists the skills found in the job description. Objects without a usable
// evidence block are returned unchanged so the validator can reject them.
func withSkills(obj map[string]any, keySkills []string) map[string]any {
	evidence, ok := obj["evidence"].(map[string]any)
	if !ok || len(keySkills) == 0 {
		return obj
	}
	modelSkills, ok := evidence["key_skills"].([]any)
	if !ok {
		return obj
	}

	merged := make([]any, 0, len(modelSkills)+len(keySkills))
	merged = append(merged, modelSkills...)
	for _, s := range keySkills {
		merged = append(merged, s)
	}

	evidenceCopy := make(map[string]any, len(evidence))
	for k, v := range evidence {
		evidenceCopy[k] = v
	}
	evidenceCopy["key_skills"] = merged
	delete(evidenceCopy, "topic_count")

	objCopy := make(map[string]any, len(obj))
	for k, v := range obj {
		objCopy[k] = v
	}
	objCopy["evidence"] = evidenceCopy
	return objCopy
}

// pinIdentity replaces the model's company and role with the user's, which are authoritative.
func pinIdentity(r types.Roadmap, company, role string) (types.Roadmap, []Warning) {
	var warnings []Warning
	if c := strings.TrimSpace(company); c != "" && !strings.EqualFold(c, r.Company) {
		warnings = append(warnings, Warning{
			Field:   "company",
			Message: fmt.Sprintf("model named %q, using %q", r.Company, c),
		})
		r.Company = c
	}
	if ro := strings.TrimSpace(role); ro != "" && !strings.EqualFold(ro, r.Role) {
		warnings = append(warnings, Warning{
			Field:   "role",
			Message: fmt.Sprintf("model named %q, using %q", r.Role, ro),
		})
		r.Role = ro
	}
	return r, warnings
}
