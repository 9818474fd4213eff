package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/spf13/cobra"
)

func newValidateCmd(_ *app) *cobra.Command {
	var schemaName, jsonPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON file against an embedded schema",
		Long: fmt.Sprintf("Validate a JSON document against one of the embedded schemas (%s).",
			strings.Join(schemas.Names(), ", ")),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			err := schemas.ValidateFile(schemaName, jsonPath)
			if err == nil {
				fmt.Fprintf(out, "Validation passed: %s conforms to %s\n", jsonPath, schemaName)
				return nil
			}

			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintf(out, "Validation failed: %s\n", jsonPath)
				for _, fieldErr := range validationErr.Errors {
					fmt.Fprintf(out, "  - %s: %s\n", fieldErr.Field, fieldErr.Message)
				}
				return fmt.Errorf("%d schema violation(s)", len(validationErr.Errors))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name")
	cmd.Flags().StringVarP(&jsonPath, "json", "j", "", "Path to the JSON document")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("json")
	return cmd
}
