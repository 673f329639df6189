package entity

// SocialLinks stores the canonical profile URL for each supported network.
type SocialLinks struct {
	LinkedIn  *string `json:"linkedin,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
}

// CompanyRecord is an AI-authored company profile. It is immutable once
// produced by the generation source; enrichment never mutates it.
type CompanyRecord struct {
	CompanyName          string      `json:"company_name"`
	WebsiteURL           *string     `json:"website_url"`
	CompanySize          *string     `json:"company_size"`
	HeadquartersLocation *string     `json:"headquarters_location"`
	RevenueMarketCap     *string     `json:"revenue_market_cap"`
	KeyProductsServices  *string     `json:"key_products_services"`
	TargetMarket         *string     `json:"target_market"`
	NumberOfUsers        *string     `json:"number_of_users"`
	NotableCustomers     []string    `json:"notable_customers"`
	SocialMedia          SocialLinks `json:"social_media"`
	ContactEmail         *string     `json:"contact_email"`
	RecentNewsInsights   *string     `json:"recent_news_insights"`
	DecisionMakerRoles   []string    `json:"decision_maker_roles"`
}
