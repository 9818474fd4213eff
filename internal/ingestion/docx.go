package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// extractDocx reads the body text of an Office Open XML document, one line
// per paragraph and per table row. Headers, footers and drawings are ignored.
func extractDocx(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid docx archive: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		switch o := item.(type) {
		case *docx.Paragraph:
			lines = append(lines, paragraphText(o))
		case *docx.Table:
			lines = append(lines, tableLines(o)...)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func paragraphText(p *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		switch o := child.(type) {
		case *docx.Run:
			writeRun(&sb, o)
		case *docx.Hyperlink:
			writeRun(&sb, &o.Run)
		}
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, run *docx.Run) {
	for _, child := range run.Children {
		switch o := child.(type) {
		case *docx.Text:
			sb.WriteString(o.Text)
		case *docx.Tab:
			sb.WriteByte('\t')
		case *docx.BarterRabbet:
			sb.WriteByte('\n')
		}
	}
}

// tableLines renders each row as its cell texts separated by tabs.
func tableLines(t *docx.Table) []string {
	lines := make([]string, 0, len(t.TableRows))
	for _, row := range t.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			paragraphs := make([]string, 0, len(cell.Paragraphs))
			for _, p := range cell.Paragraphs {
				paragraphs = append(paragraphs, paragraphText(p))
			}
			cells = append(cells, strings.Join(paragraphs, " "))
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return lines
}
