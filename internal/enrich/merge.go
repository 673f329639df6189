package enrich

import (
	"strings"

	"github.com/octobees/leadgen/api/internal/entity"
)

// Merge combines an AI-authored company record with one scrape attempt under
// fixed precedence: the first scraped email wins, the AI-claimed address is
// the fallback, and nil means neither source produced a candidate. Scraped
// fields are never back-filled from claimed data. Merge is pure and
// deterministic.
func Merge(company entity.CompanyRecord, scrape entity.ScrapeResult) entity.EnrichedRecord {
	rec := FromRecord(company)
	rec.AdditionalEmails = scrape.Emails
	rec.ScrapedPhones = scrape.Phones
	if scrape.Socials != nil {
		rec.SocialMediaScraped = scrape.Socials
	}

	if len(scrape.Emails) > 0 {
		winner := scrape.Emails[0]
		rec.ContactEmail = &winner
		rec.ContactEmailSource = entity.EmailSourceScraped
	} else if claimed := claimedEmail(company); claimed != nil {
		rec.ContactEmail = claimed
		rec.ContactEmailSource = entity.EmailSourceAI
	}

	return rec
}

// FromRecord converts a company record into an enriched record without any
// scraping attempt: the claimed email passes through, the source field stays
// empty and scraped fields are empty.
func FromRecord(company entity.CompanyRecord) entity.EnrichedRecord {
	return entity.EnrichedRecord{
		CompanyName:          company.CompanyName,
		WebsiteURL:           company.WebsiteURL,
		CompanySize:          company.CompanySize,
		HeadquartersLocation: company.HeadquartersLocation,
		RevenueMarketCap:     company.RevenueMarketCap,
		KeyProductsServices:  company.KeyProductsServices,
		TargetMarket:         company.TargetMarket,
		NumberOfUsers:        company.NumberOfUsers,
		NotableCustomers:     company.NotableCustomers,
		RecentNewsInsights:   company.RecentNewsInsights,
		DecisionMakerRoles:   company.DecisionMakerRoles,
		ContactEmail:         claimedEmail(company),
		ContactEmailClaimed:  claimedEmail(company),
		SocialMediaClaimed:   company.SocialMedia,
		SocialMediaScraped:   map[string]string{},
	}
}

// claimedEmail returns the AI-claimed address, treating blank strings as
// absent so a record never carries an empty-string email.
func claimedEmail(company entity.CompanyRecord) *string {
	if company.ContactEmail == nil {
		return nil
	}
	email := strings.TrimSpace(*company.ContactEmail)
	if email == "" {
		return nil
	}
	return &email
}
