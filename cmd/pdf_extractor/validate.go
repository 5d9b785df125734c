package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-extractor/internal/schemas"
)

var validateSchemaPath string

var validateCmd = &cobra.Command{
	Use:   "validate <json>",
	Short: "Validate an extraction JSON file",
	Long: `Validate a JSON file against the built-in extraction result schema, or against the schema
given with --schema. Exits with status 1 when validation fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a JSON schema file (defaults to the extraction result schema)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	jsonPath := args[0]

	var err error
	if validateSchemaPath != "" {
		err = schemas.ValidateJSON(validateSchemaPath, jsonPath)
	} else {
		err = schemas.ValidateResultFile(jsonPath)
	}
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %v\n", err)
		return fmt.Errorf("validation failed for %s", jsonPath)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", jsonPath)
	return nil
}
