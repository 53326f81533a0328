package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-roadmap/internal/artifact"
	"github.com/jonathan/interview-roadmap/internal/observability"
	"github.com/jonathan/interview-roadmap/internal/roadmap"
	"github.com/jonathan/interview-roadmap/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <roadmap.json>",
	Short: "Validate a roadmap file",
	Long: `Checks a roadmap JSON file against the roadmap JSON Schema and re-runs the roadmap validation rules.

Soft findings (study order entries outside every round, duplicate round types) are printed as warnings and do not fail validation.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateSchemaPath string

func init() {
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to an alternative JSON Schema file (defaults to the built-in roadmap schema)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	data, err := artifact.Read(path)
	if err != nil {
		return err
	}

	schema, err := loadSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(out, "Validation failed: %s\n", path)
			for i, fe := range validationErr.Errors {
				fmt.Fprintf(out, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
			}
			return fmt.Errorf("%s does not match the roadmap schema", path)
		}
		return fmt.Errorf("schema validation error: %w", err)
	}

	record, err := artifact.Load(path)
	if err != nil {
		return err
	}
	validated, err := roadmap.NewValidator().Revalidate(record)
	if err != nil {
		fmt.Fprintf(out, "Validation failed: %s\n", path)
		fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("%s failed roadmap validation: %w", path, err)
	}

	observability.NewPrinter(out).PrintWarnings(validated.Warnings)
	fmt.Fprintf(out, "Validation passed: %s (%d rounds, %d warnings)\n", path, len(record.Rounds), len(validated.Warnings))
	return nil
}

func loadSchema() (*schemas.Schema, error) {
	if validateSchemaPath != "" {
		return schemas.Load(validateSchemaPath)
	}
	return schemas.Roadmap()
}
