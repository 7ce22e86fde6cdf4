package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/schemas"
)

func newValidateCmd(_ *app) *cobra.Command {
	var (
		schemaName string
		inputFile  string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON document against a built-in schema",
		Long:  "Validate a JSON document against one of: " + strings.Join(schemas.Names(), ", "),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := schemas.ValidateFile(schemaName, inputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s\n", inputFile, schemaName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name")
	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to JSON file")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
