// Package llm - extractor.go provides schema-driven extraction prompts.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-fit/internal/prompts"
)

// promptFile holds the recognition prompt templates.
const promptFile = "recognition.json"

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "NamedEntities")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "extraction-instructions"), map[string]string{
		"Text": inputText,
	}))

	return sb.String()
}

// NamedEntitySchema returns the extraction schema for named entity recognition
// over resumes and job descriptions. Labels follow the common NER tag names so
// that the same category filter applies to every recognizer.
func NamedEntitySchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "NamedEntities",
		Description: prompts.MustGet(promptFile, "named-entities"),
		Fields: []SchemaField{
			{
				Name:        "entities",
				Type:        `[{"text": "string", "label": "string"}]`,
				Description: "Every entity found, in order of appearance",
				Required:    true,
			},
		},
	}
}
