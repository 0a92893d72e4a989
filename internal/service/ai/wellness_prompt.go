package ai

import (
	"fmt"
	"strings"

	"github.com/healthpulse/backend/internal/model/persona"
)

// buildSystemPrompt renders the fixed assistant persona into the
// system instruction sent with every conversation turn.
func buildSystemPrompt(p persona.Persona) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "You are %s, a %s helping a user with their personal wellness. ", p.Name, p.Title)
	builder.WriteString("You help users understand general health concepts, track their wellness, and prepare for doctor visits.")

	if len(p.Guardrails) > 0 {
		builder.WriteString("\n\nIMPORTANT:")
		for _, rule := range p.Guardrails {
			builder.WriteString("\n- ")
			builder.WriteString(rule)
		}
	}

	if tone := strings.TrimSpace(p.Tone); tone != "" {
		fmt.Fprintf(&builder, "\n\nTone: %s.", tone)
	}
	if len(p.Expertise) > 0 {
		fmt.Fprintf(&builder, "\nAreas you can speak to: %s.", strings.Join(p.Expertise, ", "))
	}

	return builder.String()
}

// The simplify prompts declare a strict JSON contract. The field
// shapes are described in words rather than literal braces because
// the template is FString-formatted.
const simplifySystemPrompt = "You are an expert medical assistant helping a patient understand " +
	"their medical report. Analyze the provided medical text and respond with only a single JSON " +
	"object and no other text. The object must have exactly these fields: " +
	"\"summary\": a simple, jargon-free summary of the report in 2-3 sentences; " +
	"\"keyTerms\": an array of objects, each with a \"term\" string and a \"definition\" string " +
	"giving a simple definition for the patient; " +
	"\"actionItems\": an array of strings listing actionable steps or questions for the doctor. " +
	"All three fields are required."

const simplifyUserPrompt = "Medical text:\n{report_text}\n\nReturn the JSON object."
