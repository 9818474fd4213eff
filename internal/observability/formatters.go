// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of the distribution bar chart
	barWidth = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSkillSets outputs the skills extracted from both documents.
func (p *Printer) PrintSkillSets(resume, job types.SkillSet) {
	var sb strings.Builder
	writeSkillList(&sb, "Resume skills", resume.Items())
	sb.WriteString("\n")
	writeSkillList(&sb, "Job skills", job.Items())

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeSkillList(sb *strings.Builder, label string, items []string) {
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow*2)
	line := strings.Join(items[:count], ", ")
	for _, chunk := range wrap(line, boxWidth-6) {
		sb.WriteString(fmt.Sprintf("  %s\n", chunk))
	}
	if len(items) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-count))
	}
}

// PrintSentiment outputs the polarity of both documents.
func (p *Printer) PrintSentiment(resume, job types.Sentiment) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-8s %6s %6s %6s %9s\n", "", "neg", "neu", "pos", "compound"))
	sb.WriteString(fmt.Sprintf("%-8s %6.3f %6.3f %6.3f %9.3f\n", "Resume", resume.Negative, resume.Neutral, resume.Positive, resume.Compound))
	sb.WriteString(fmt.Sprintf("%-8s %6.3f %6.3f %6.3f %9.3f", "Job", job.Negative, job.Neutral, job.Positive, job.Compound))

	p.printBox("SENTIMENT", sb.String())
}

// PrintMatches outputs the per-skill classification grouped by tier.
func (p *Printer) PrintMatches(result *types.SkillAnalysisResult) {
	if result == nil || result.Total() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Similarity: %s\n\n", result.SimilaritySource))
	writeMatches(&sb, "High", result.HighMatches)
	writeMatches(&sb, "Partial", result.PartialMatches)
	writeMatches(&sb, "Missing", result.MissingSkills)

	p.printBox("SKILL MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

func writeMatches(sb *strings.Builder, label string, matches []types.SkillMatch) {
	if len(matches) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(matches)))
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		if m.ResumeSkill == "" || m.Tier == types.TierMissing {
			sb.WriteString(fmt.Sprintf("  • %s\n", m.JobSkill))
			continue
		}
		sb.WriteString(fmt.Sprintf("  • %s ← %s (%.2f)\n", m.JobSkill, m.ResumeSkill, m.Similarity))
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(matches)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintReport outputs the headline scores, assessment, tier distribution and
// recommendations.
func (p *Printer) PrintReport(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compatibility:  %6.2f  (%s)\n", report.CompatibilityScore, report.Assessment.Band))
	if report.SkillAnalysis != nil {
		sb.WriteString(fmt.Sprintf("Skill match:    %6.2f%%\n", report.SkillAnalysis.OverallMatchPercent))
	}
	sb.WriteString(fmt.Sprintf("Skill coverage: %6.2f%%\n", report.SkillCoveragePercent))
	sb.WriteString(fmt.Sprintf("Skill gap:      %6.2f%%\n", report.SkillGapPercent))
	sb.WriteString(fmt.Sprintf("Sentiment:      %6.2f  (divergence %.3f)\n", report.SentimentScore, report.SentimentDivergence))
	sb.WriteString("\n")
	sb.WriteString(DistributionBar(report.Distribution, barWidth))
	sb.WriteString("\n\n")
	sb.WriteString(report.Assessment.Message)
	if len(report.Recommendations) > 0 {
		sb.WriteString("\n\nRecommendations:")
		for _, rec := range report.Recommendations {
			sb.WriteString("\n  - " + rec)
		}
	}

	p.printBox("COMPATIBILITY REPORT", sb.String())
}

// DistributionBar renders the high/partial/missing split as a fixed-width bar
// followed by a legend. An empty distribution renders an empty bar.
func DistributionBar(d types.Distribution, width int) string {
	high := int(d.HighFraction*float64(width) + 0.5)
	partial := int(d.PartialFraction*float64(width) + 0.5)
	if high+partial > width {
		partial = width - high
	}
	missing := 0
	if d.High+d.Partial+d.Missing > 0 {
		missing = width - high - partial
	}
	empty := width - high - partial - missing

	bar := strings.Repeat("█", high) + strings.Repeat("▒", partial) + strings.Repeat("░", missing) + strings.Repeat(" ", empty)
	return fmt.Sprintf("[%s]\n█ high %d  ▒ partial %d  ░ missing %d", bar, d.High, d.Partial, d.Missing)
}

// wrap splits s at spaces so that no line exceeds width where possible.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
