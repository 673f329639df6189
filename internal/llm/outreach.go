package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
)

// OutreachContent holds AI-generated email content suggestions.
type OutreachContent struct {
	Subject      string `json:"subject"`
	Greeting     string `json:"greeting"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
	Closing      string `json:"closing"`
}

const outreachPromptTemplate = `Generate a professional outreach email.

Company: %s
Purpose: %s
Tone: %s

Return a JSON object only:
{
  "subject": "Email subject line",
  "greeting": "Opening greeting",
  "body": "Main email body (2-3 paragraphs)",
  "call_to_action": "Closing call to action",
  "closing": "Email closing signature"
}

Make it compelling, personalized, and professional.`

// ComposeOutreach generates email content suggestions for contacting a
// company. Purpose and tone fall back to sensible defaults when empty.
func (g *Generator) ComposeOutreach(ctx context.Context, companyName, purpose, tone string) (OutreachContent, error) {
	if purpose == "" {
		purpose = "introduction"
	}
	if tone == "" {
		tone = "professional"
	}

	raw, err := g.generateJSON(ctx, fmt.Sprintf(outreachPromptTemplate, companyName, purpose, tone))
	if err != nil {
		return OutreachContent{}, err
	}

	var content OutreachContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return OutreachContent{}, eris.Wrap(err, "llm: decode outreach payload")
	}
	if content.Subject == "" && content.Body == "" {
		return OutreachContent{}, eris.New("llm: empty outreach content")
	}
	return content, nil
}
