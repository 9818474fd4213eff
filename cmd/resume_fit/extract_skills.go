package main

import (
	"fmt"

	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/spf13/cobra"
)

func newExtractSkillsCmd(a *app) *cobra.Command {
	var file, text string
	cmd := &cobra.Command{
		Use:   "extract-skills",
		Short: "Extract the normalized skill set of one document",
		Long:  "Normalize a document and print its sorted, deduplicated skill set as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, _, cleanup, err := a.buildAnalyzer(cmd, map[string]string{"skills.recognizer": "recognizer"})
			defer cleanup()
			if err != nil {
				return err
			}

			content, err := readDocument(file, text, a.log)
			if err != nil {
				return err
			}

			set := analyzer.Extractor().Extract(cmd.Context(), parsing.NormalizeText(content))
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if err := schemas.ValidateSkillSet(set); err != nil {
				return fmt.Errorf("skill set failed schema validation: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), types.ExtractSkillsResponse{Skills: set, Count: set.Len()})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the document")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Document text")
	cmd.Flags().String("recognizer", "rules", "Entity recognizer (none, rules or llm)")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
	cmd.MarkFlagsOneRequired("file", "text")
	return cmd
}
