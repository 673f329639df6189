package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/octobees/leadgen/api/internal/entity"
)

const companiesPromptTemplate = `You are a professional lead generation expert. Generate a list of %d companies in the %s industry that are based in or operate in %s.

Return a valid JSON object only, with no markdown formatting or text outside the JSON, using this structure:
{
  "companies": [
    {
      "company_name": "Official company name",
      "website_url": "Official website link",
      "company_size": "Number of employees (approximate range)",
      "headquarters_location": "City and Country",
      "revenue_market_cap": "Annual revenue or market capitalization",
      "key_products_services": "Main offerings relevant to the industry",
      "target_market": "Primary customer segments they serve",
      "number_of_users": "Total number of users/members/customers",
      "notable_customers": ["Customer 1", "Customer 2"],
      "social_media": {
        "linkedin": "LinkedIn company page URL",
        "twitter": "Twitter/X profile URL",
        "facebook": "Facebook page URL",
        "instagram": "Instagram profile URL",
        "youtube": "YouTube channel URL"
      },
      "contact_email": "General contact email",
      "recent_news_insights": "Recent developments or notable information",
      "decision_maker_roles": ["CEO", "CFO", "VP of Sales"]
    }
  ]
}

If any information is not publicly available, set that field to the JSON null value, never a placeholder string. Focus on accurate, up-to-date information valuable for business development.`

// Generate produces AI-authored company records for the given industry and
// country. It satisfies the orchestrator's CompanySource contract.
func (g *Generator) Generate(ctx context.Context, industry string, count int, country string) ([]entity.CompanyRecord, error) {
	prompt := fmt.Sprintf(companiesPromptTemplate, count, industry, country)

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Companies []entity.CompanyRecord `json:"companies"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, eris.Wrap(err, "llm: decode companies payload")
	}
	if len(payload.Companies) == 0 {
		return nil, eris.New("llm: model returned no companies")
	}
	return payload.Companies, nil
}
