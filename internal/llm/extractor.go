package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object a model should extract from a text.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "number", "[string]"
	Description string
	Required    bool
}

// BuildExtractionPrompt constructs the extraction prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Geef ALLEEN geldige JSON terug met precies deze structuur:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (verplicht)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("BELANGRIJK:\n")
	sb.WriteString("- Neem informatie letterlijk over uit de tekst, verzin niets.\n")
	sb.WriteString("- Laat een veld leeg (\"\" of 0) als de tekst er niets over zegt.\n")
	sb.WriteString("- Geef alleen het JSON-object terug, zonder uitleg en zonder codeblok.\n\n")

	sb.WriteString("Tekst:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// UploadPrefillSchema extracts the fields of the upload flow from a previous groepsplan.
func UploadPrefillSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "UploadPrefill",
		Description: `Je bent een intern begeleider die een bestaand groepsplan leest.
Haal de gegevens van de vorige planperiode uit de tekst zodat een nieuw plan erop kan voortbouwen.`,
		Fields: []SchemaField{
			{Name: "groep", Type: "number", Description: "Groep 1 tot en met 8"},
			{Name: "vakgebied", Type: "string", Description: "Vakgebied van het plan, bijvoorbeeld rekenen of spelling"},
			{Name: "previous_periode", Type: "string", Description: "Periode waarover het plan ging"},
			{Name: "previous_groepsindeling", Type: "string", Description: "Indeling in basis-, intensieve en meer-groep met aantallen"},
			{Name: "previous_goals", Type: "string", Description: "De doelen van het plan, letterlijk"},
			{Name: "previous_results", Type: "string", Description: "Behaalde resultaten of evaluatie, letterlijk"},
		},
	}
}
