// Package roadmap turns extracted model output into a validated interview roadmap,
// falling back to a fixed template whenever the model output cannot be used.
package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-roadmap/internal/skills"
	"github.com/jonathan/interview-roadmap/internal/types"
)

// Validator checks candidate objects against the roadmap schema and stamps
// the resulting record with its creation time and schema version.
type Validator struct {
	now     func() time.Time
	version string
	structs *validator.Validate
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithClock overrides the clock used to stamp generated_at.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.now = now
	}
}

// WithVersion overrides the schema version stamped on new records.
func WithVersion(version string) ValidatorOption {
	return func(v *Validator) {
		v.version = version
	}
}

// NewValidator creates a Validator using the wall clock and types.SchemaVersion.
func NewValidator(opts ...ValidatorOption) *Validator {
	structs := validator.New()
	structs.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{
		now:     time.Now,
		version: types.SchemaVersion,
		structs: structs,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validated is an accepted roadmap together with its soft warnings.
type Validated struct {
	Roadmap  types.Roadmap
	Warnings []Warning
}

// Validate builds a roadmap from a parsed model object. Any generated_at or
// version in obj is ignored; the record is stamped by the validator.
func (v *Validator) Validate(obj map[string]any) (*Validated, error) {
	return v.validate(obj, v.now().UTC(), v.version)
}

// Revalidate re-runs every check on an existing record, keeping its original
// generated_at and version so that validation is idempotent.
func (v *Validator) Revalidate(r types.Roadmap) (*Validated, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roadmap: %w", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roadmap: %w", err)
	}
	return v.validate(obj, r.GeneratedAt, r.Version)
}

func (v *Validator) validate(obj map[string]any, generatedAt time.Time, version string) (*Validated, error) {
	if obj == nil {
		return nil, missingField("", "object is required")
	}

	var warnings []Warning

	company, err := requireString(obj, "company", "company")
	if err != nil {
		return nil, err
	}
	role, err := requireString(obj, "role", "role")
	if err != nil {
		return nil, err
	}

	rounds, roundWarnings, err := validateRounds(obj)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, roundWarnings...)

	difficulty, err := validateDifficulty(obj)
	if err != nil {
		return nil, err
	}

	order, orderWarnings, err := validateRecommendedOrder(obj, rounds)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, orderWarnings...)

	evidence, evidenceWarnings, err := validateEvidence(obj)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, evidenceWarnings...)

	record := types.Roadmap{
		Company:          company,
		Role:             role,
		Rounds:           rounds,
		Difficulty:       difficulty,
		RecommendedOrder: order,
		Evidence:         evidence,
		GeneratedAt:      generatedAt,
		Version:          version,
	}

	if err := v.checkStruct(record); err != nil {
		return nil, err
	}

	return &Validated{Roadmap: record, Warnings: warnings}, nil
}

// checkStruct enforces the struct-tag invariants on the assembled record.
func (v *Validator) checkStruct(record types.Roadmap) error {
	err := v.structs.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "Roadmap.")
		if fe.Tag() == "oneof" {
			return invalidEnum(field, fmt.Sprintf("value %v is not allowed", fe.Value()))
		}
		return missingField(field, fmt.Sprintf("failed %q constraint", fe.Tag()))
	}
	return fmt.Errorf("struct validation failed: %w", err)
}

// requireString returns obj[key] as a trimmed non-empty string.
func requireString(obj map[string]any, key, path string) (string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", missingField(path, "is required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", missingField(path, fmt.Sprintf("must be a string, got %T", raw))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", missingField(path, "must not be empty")
	}
	return s, nil
}

// requireArray returns obj[key] as a JSON array.
func requireArray(obj map[string]any, key, path string) ([]any, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, missingField(path, "is required")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, missingField(path, fmt.Sprintf("must be an array, got %T", raw))
	}
	return list, nil
}

func validateRounds(obj map[string]any) ([]types.Round, []Warning, error) {
	list, err := requireArray(obj, "rounds", "rounds")
	if err != nil {
		return nil, nil, err
	}
	if len(list) == 0 {
		return nil, nil, emptyCollection("rounds")
	}

	var warnings []Warning
	rounds := make([]types.Round, 0, len(list))
	seenTypes := make(map[string]int, len(list))

	for i, item := range list {
		path := fmt.Sprintf("rounds[%d]", i)
		roundObj, ok := item.(map[string]any)
		if !ok {
			return nil, nil, missingField(path, fmt.Sprintf("must be an object, got %T", item))
		}

		roundType, err := requireString(roundObj, "type", path+".type")
		if err != nil {
			return nil, nil, err
		}

		topicList, err := requireArray(roundObj, "topics", path+".topics")
		if err != nil {
			return nil, nil, err
		}
		if len(topicList) == 0 {
			return nil, nil, emptyCollection(path + ".topics")
		}

		topics := make([]string, 0, len(topicList))
		for j, rawTopic := range topicList {
			topic, ok := rawTopic.(string)
			if !ok || strings.TrimSpace(topic) == "" {
				return nil, nil, missingField(fmt.Sprintf("%s.topics[%d]", path, j), "must be a non-empty string")
			}
			topics = append(topics, strings.TrimSpace(topic))
		}

		key := strings.ToLower(roundType)
		if first, dup := seenTypes[key]; dup {
			warnings = append(warnings, Warning{
				Field:   path + ".type",
				Message: fmt.Sprintf("duplicate round type %q (first seen at rounds[%d])", roundType, first),
			})
		} else {
			seenTypes[key] = i
		}

		rounds = append(rounds, types.Round{Type: roundType, Topics: topics})
	}

	return rounds, warnings, nil
}

func validateDifficulty(obj map[string]any) (types.Difficulty, error) {
	raw, ok := obj["difficulty"]
	if !ok || raw == nil {
		return "", missingField("difficulty", "is required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalidEnum("difficulty", fmt.Sprintf("must be a string, got %T", raw))
	}
	difficulty, ok := types.ParseDifficulty(s)
	if !ok {
		return "", invalidEnum("difficulty", fmt.Sprintf("%q is not one of Easy, Medium, Hard, Very Hard", s))
	}
	return difficulty, nil
}

func validateRecommendedOrder(obj map[string]any, rounds []types.Round) ([]string, []Warning, error) {
	list, err := requireArray(obj, "recommended_order", "recommended_order")
	if err != nil {
		return nil, nil, err
	}

	topics := (&types.Roadmap{Rounds: rounds}).AllTopics()

	var warnings []Warning
	order := make([]string, 0, len(list))
	for i, raw := range list {
		path := fmt.Sprintf("recommended_order[%d]", i)
		entry, ok := raw.(string)
		if !ok || strings.TrimSpace(entry) == "" {
			return nil, nil, missingField(path, "must be a non-empty string")
		}
		entry = strings.TrimSpace(entry)
		if !topics[entry] {
			warnings = append(warnings, Warning{
				Field:   path,
				Message: fmt.Sprintf("%q does not appear in any round's topics", entry),
			})
		}
		order = append(order, entry)
	}

	return order, warnings, nil
}

func validateEvidence(obj map[string]any) (types.Evidence, []Warning, error) {
	raw, ok := obj["evidence"]
	if !ok || raw == nil {
		return types.Evidence{}, nil, missingField("evidence", "is required")
	}
	evidenceObj, ok := raw.(map[string]any)
	if !ok {
		return types.Evidence{}, nil, missingField("evidence", fmt.Sprintf("must be an object, got %T", raw))
	}

	list, err := requireArray(evidenceObj, "key_skills", "evidence.key_skills")
	if err != nil {
		return types.Evidence{}, nil, err
	}

	var warnings []Warning
	collected := make([]string, 0, len(list))
	for i, item := range list {
		skill, ok := item.(string)
		if !ok {
			warnings = append(warnings, Warning{
				Field:   fmt.Sprintf("evidence.key_skills[%d]", i),
				Message: fmt.Sprintf("discarded non-string skill of type %T", item),
			})
			continue
		}
		collected = append(collected, skill)
	}
	keySkills := skills.Dedupe(collected)

	if claimed, ok := evidenceObj["topic_count"].(float64); ok && int(claimed) != len(keySkills) {
		warnings = append(warnings, Warning{
			Field:   "evidence.topic_count",
			Message: fmt.Sprintf("reported %d, recomputed as %d", int(claimed), len(keySkills)),
		})
	}

	return types.Evidence{KeySkills: keySkills, TopicCount: len(keySkills)}, warnings, nil
}
