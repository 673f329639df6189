package enrich

import (
	"net/url"
	"strings"

	"github.com/octobees/leadgen/api/internal/entity"
)

const (
	categoryContact  = "contact_completeness"
	categoryWebsite  = "website_quality"
	categorySocial   = "social_presence"
	categoryBusiness = "business_profile"
)

var freeHostingDomains = []string{
	"wordpress.com",
	"blogspot.com",
	"wixsite.com",
	"weebly.com",
	"squarespace.com",
	"medium.com",
	"substack.com",
	"godaddysites.com",
	"notion.site",
}

// Score rates an enriched record 0-100 from the signals already on it. The
// breakdown keys match the four scoring categories.
func Score(record entity.EnrichedRecord) (int, map[string]int) {
	breakdown := map[string]int{
		categoryContact:  scoreContact(record),
		categoryWebsite:  scoreWebsite(record),
		categorySocial:   scoreSocial(record),
		categoryBusiness: scoreBusiness(record),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}
	return total, breakdown
}

// scoreContact awards up to 30 points for reachable contact channels.
func scoreContact(record entity.EnrichedRecord) int {
	score := 0
	if record.ContactEmail != nil && strings.TrimSpace(*record.ContactEmail) != "" {
		score += 10
		// a verified address found on the site beats a model claim
		if record.ContactEmailSource == entity.EmailSourceScraped {
			score += 5
		}
	}
	if len(record.ScrapedPhones) > 0 {
		score += 10
	}
	if len(record.AdditionalEmails) > 0 {
		score += 5
	}
	return capAt(score, 30)
}

// scoreWebsite awards up to 25 points for website presence and quality.
func scoreWebsite(record entity.EnrichedRecord) int {
	if record.WebsiteURL == nil {
		return 0
	}
	site := strings.TrimSpace(*record.WebsiteURL)
	if site == "" {
		return 0
	}

	score := 10
	if strings.HasPrefix(strings.ToLower(site), "https://") {
		score += 5
	}
	if highQualityDomain(site) {
		score += 10
	}
	return capAt(score, 25)
}

// scoreSocial awards up to 25 points for verified social profiles. Only
// scraped links count; claimed handles were never checked against the site.
func scoreSocial(record entity.EnrichedRecord) int {
	if len(record.SocialMediaScraped) == 0 {
		return 0
	}

	score := 0
	if record.SocialMediaScraped["linkedin"] != "" {
		score += 10
	}
	for _, platform := range []string{"twitter", "facebook", "instagram", "youtube"} {
		if record.SocialMediaScraped[platform] != "" {
			score += 5
		}
	}
	return capAt(score, 25)
}

// scoreBusiness awards up to 20 points for a filled-out business profile.
func scoreBusiness(record entity.EnrichedRecord) int {
	score := 0
	if hasText(record.CompanySize) {
		score += 5
	}
	if hasText(record.RevenueMarketCap) {
		score += 5
	}
	if hasText(record.TargetMarket) || hasText(record.KeyProductsServices) {
		score += 5
	}
	if hasText(record.HeadquartersLocation) {
		score += 5
	}
	return capAt(score, 20)
}

func hasText(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

func highQualityDomain(raw string) bool {
	domain := extractDomain(raw)
	if domain == "" {
		return false
	}
	for _, bad := range freeHostingDomains {
		if domain == bad || strings.HasSuffix(domain, "."+bad) {
			return false
		}
	}
	return strings.Count(domain, ".") >= 1
}

func extractDomain(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return ""
	}
	if !strings.Contains(lowered, "://") {
		lowered = "https://" + lowered
	}
	parsed, err := url.Parse(lowered)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

func capAt(score, limit int) int {
	if score > limit {
		return limit
	}
	return score
}
