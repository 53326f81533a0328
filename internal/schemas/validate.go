// Package schemas checks roadmap artifacts against their JSON Schema.
package schemas

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	roadmapschemas "github.com/jonathan/interview-roadmap/schemas"
)

// Schema is a compiled JSON Schema.
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
}

var roadmapSchema = sync.OnceValues(func() (*Schema, error) {
	return compile(roadmapschemas.RoadmapFile, gojsonschema.NewBytesLoader(roadmapschemas.Roadmap))
})

// Roadmap returns the built-in roadmap schema, compiled on first use.
func Roadmap() (*Schema, error) {
	return roadmapSchema()
}

// Load reads and compiles a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SchemaLoadError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &SchemaLoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return compile(path, gojsonschema.NewBytesLoader(data))
}

func compile(name string, loader gojsonschema.JSONLoader) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// Name returns the file the schema came from.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks a JSON document. Violations are returned as a
// *ValidationError; unparseable JSON is reported as a plain error.
func (s *Schema) Validate(data []byte) error {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		fieldErrors = append(fieldErrors, FieldError{
			Field:   field,
			Kind:    desc.Type(),
			Message: desc.Description(),
		})
	}
	slices.SortStableFunc(fieldErrors, func(a, b FieldError) int {
		return cmp.Compare(a.Field, b.Field)
	})

	return &ValidationError{Schema: s.name, Errors: fieldErrors}
}

// ValidateRoadmap checks data against the built-in roadmap schema.
func ValidateRoadmap(data []byte) error {
	schema, err := Roadmap()
	if err != nil {
		return err
	}
	return schema.Validate(data)
}
