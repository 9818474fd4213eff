package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// analyzerBindings maps config keys to the flags shared by analysis commands.
var analyzerBindings = map[string]string{
	"matching.preset":    "preset",
	"embedding.provider": "embedding",
	"skills.recognizer":  "recognizer",
}

func addAnalyzerFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "default", "Tier threshold preset (default or simplified)")
	cmd.Flags().String("embedding", "none", "Similarity backend (none, hashing or gemini)")
	cmd.Flags().String("recognizer", "rules", "Entity recognizer (none, rules or llm)")
}

type analyzeOptions struct {
	resumeFile string
	resumeText string
	jobFile    string
	jobText    string
	jobURL     string
	format     string
	outFile    string
	verbose    bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job posting",
		Long: `Extract skills from a resume and a job posting, match them into high,
partial and missing tiers, and report the compatibility score with its
assessment band. Either side may be omitted; it is then treated as empty.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, a, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.resumeFile, "resume", "r", "", "Path to the resume (.txt, .md, .docx, .pdf or .html)")
	flags.StringVar(&opts.resumeText, "resume-text", "", "Resume text")
	flags.StringVarP(&opts.jobFile, "job", "j", "", "Path to the job posting")
	flags.StringVar(&opts.jobText, "job-text", "", "Job posting text")
	flags.StringVarP(&opts.jobURL, "job-url", "u", "", "URL to fetch the job posting from")
	flags.StringVarP(&opts.format, "format", "f", "json", "Output format (json or text)")
	flags.StringVarP(&opts.outFile, "out", "o", "", "Write output to this file instead of stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print extracted skills and sentiment with text output")
	addAnalyzerFlags(cmd)

	cmd.MarkFlagsMutuallyExclusive("resume", "resume-text")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text", "job-url")
	cmd.MarkFlagsOneRequired("resume", "resume-text", "job", "job-text", "job-url")
	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, opts *analyzeOptions) error {
	if opts.format != "json" && opts.format != "text" {
		return fmt.Errorf("unsupported format %q: use json or text", opts.format)
	}

	analyzer, cfg, cleanup, err := a.buildAnalyzer(cmd, analyzerBindings)
	defer cleanup()
	if err != nil {
		return err
	}

	resumeText, err := readDocument(opts.resumeFile, opts.resumeText, a.log)
	if err != nil {
		return err
	}

	var jobText string
	if opts.jobURL != "" {
		jobText, err = readJobURL(cmd.Context(), opts.jobURL, cfg.Fetch, a.log)
	} else {
		jobText, err = readDocument(opts.jobFile, opts.jobText, a.log)
	}
	if err != nil {
		return err
	}

	run, err := analyzer.Run(cmd.Context(), pipeline.Request{
		ResumeText: resumeText,
		JobText:    jobText,
		OnProgress: func(event pipeline.ProgressEvent) {
			a.log.Debug(event.Message, zap.String("stage", event.Step))
		},
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out, closeOut, err := openOutput(cmd, opts.outFile)
	if err != nil {
		return err
	}
	defer closeOut()

	if opts.format == "text" {
		printer := observability.NewPrinter(out)
		if opts.verbose {
			printer.PrintSkillSets(run.ResumeSkills, run.JobSkills)
			printer.PrintSentiment(run.ResumeSentiment, run.JobSentiment)
		}
		printer.PrintMatches(run.Report.SkillAnalysis)
		printer.PrintReport(run.Report)
		return nil
	}

	if err := schemas.ValidateReport(run.Report); err != nil {
		return fmt.Errorf("report failed schema validation: %w", err)
	}
	return writeJSON(out, types.NewAnalyzeResponse(run))
}

// openOutput returns the command's stdout, or a created file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
