package main

import (
	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/sentiment"
	"github.com/spf13/cobra"
)

func newSentimentCmd(a *app) *cobra.Command {
	var file, text string
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Score the sentiment polarity of one document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.loadConfig(cmd, nil); err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			content, err := readDocument(file, text, a.log)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sentiment.NewScorer().Score(parsing.NormalizeText(content)))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the document")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Document text")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
	cmd.MarkFlagsOneRequired("file", "text")
	return cmd
}
