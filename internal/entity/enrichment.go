package entity

// Contact email source values recorded on enriched records.
const (
	EmailSourceScraped = "scraped"
	EmailSourceAI      = "ai"
)

// ScrapeResult is the outcome of one attempt to extract contact data from a
// company website. It lives only for the duration of a merge and is never
// persisted.
type ScrapeResult struct {
	Emails  []string          `json:"emails"`
	Phones  []string          `json:"phones"`
	Socials map[string]string `json:"socials"`
	Success bool              `json:"success"`
	Reason  string            `json:"reason,omitempty"`
}

// EnrichedRecord combines an AI-authored CompanyRecord with scraped contact
// data under fixed precedence: a scraped email wins over the AI-claimed one,
// scraped socials are never back-filled from claimed handles.
type EnrichedRecord struct {
	CompanyName          string      `json:"company_name"`
	WebsiteURL           *string     `json:"website_url"`
	CompanySize          *string     `json:"company_size"`
	HeadquartersLocation *string     `json:"headquarters_location"`
	RevenueMarketCap     *string     `json:"revenue_market_cap"`
	KeyProductsServices  *string     `json:"key_products_services"`
	TargetMarket         *string     `json:"target_market"`
	NumberOfUsers        *string     `json:"number_of_users"`
	NotableCustomers     []string    `json:"notable_customers"`
	RecentNewsInsights   *string     `json:"recent_news_insights"`
	DecisionMakerRoles   []string    `json:"decision_maker_roles"`

	// ContactEmail is the merge winner. It is nil only when neither source
	// produced a candidate, never an empty string.
	ContactEmail        *string `json:"contact_email"`
	ContactEmailSource  string  `json:"contact_email_source,omitempty"`
	ContactEmailClaimed *string `json:"contact_email_claimed,omitempty"`

	AdditionalEmails []string `json:"additional_emails"`
	ScrapedPhones    []string `json:"scraped_phones,omitempty"`

	SocialMediaClaimed SocialLinks       `json:"social_media_claimed"`
	SocialMediaScraped map[string]string `json:"social_media_scraped"`

	// LeadScore rates the record 0-100 on contact completeness, website
	// quality, social presence and business profile.
	LeadScore          int            `json:"lead_score"`
	LeadScoreBreakdown map[string]int `json:"lead_score_breakdown,omitempty"`
}
