package enrich

import (
	"testing"

	"github.com/octobees/leadgen/api/internal/entity"
)

func TestScore_FullCoverage(t *testing.T) {
	email := "contact@acme.com"
	site := "https://acme.com"
	size := "200-500"
	revenue := "$50M ARR"
	market := "mid-market fintech"
	hq := "Berlin, Germany"

	record := entity.EnrichedRecord{
		CompanyName:          "Acme",
		WebsiteURL:           &site,
		CompanySize:          &size,
		RevenueMarketCap:     &revenue,
		TargetMarket:         &market,
		HeadquartersLocation: &hq,
		ContactEmail:         &email,
		ContactEmailSource:   entity.EmailSourceScraped,
		AdditionalEmails:     []string{"sales@acme.com"},
		ScrapedPhones:        []string{"+4930123456"},
		SocialMediaScraped: map[string]string{
			"linkedin":  "https://linkedin.com/company/acme",
			"twitter":   "https://twitter.com/acme",
			"facebook":  "https://facebook.com/acme",
			"instagram": "https://instagram.com/acme",
			"youtube":   "https://youtube.com/@acme",
		},
	}

	total, breakdown := Score(record)

	if total != 100 {
		t.Fatalf("expected full score 100, got %d (%+v)", total, breakdown)
	}
	if breakdown[categoryContact] != 30 {
		t.Fatalf("expected contact completeness 30, got %d", breakdown[categoryContact])
	}
	if breakdown[categoryWebsite] != 25 {
		t.Fatalf("expected website quality 25, got %d", breakdown[categoryWebsite])
	}
	if breakdown[categorySocial] != 25 {
		t.Fatalf("expected social presence 25, got %d", breakdown[categorySocial])
	}
	if breakdown[categoryBusiness] != 20 {
		t.Fatalf("expected business profile 20, got %d", breakdown[categoryBusiness])
	}
}

func TestScore_MinimalSignals(t *testing.T) {
	blank := "   "
	record := entity.EnrichedRecord{
		CompanyName:        "Ghost Co",
		CompanySize:        &blank,
		SocialMediaScraped: map[string]string{"linkedin": ""},
	}

	total, breakdown := Score(record)

	if total != 0 {
		t.Fatalf("expected zero score for insufficient signals, got %d (%+v)", total, breakdown)
	}
}

func TestScore_ScrapedEmailBeatsClaimed(t *testing.T) {
	email := "contact@acme.com"

	scraped := entity.EnrichedRecord{ContactEmail: &email, ContactEmailSource: entity.EmailSourceScraped}
	claimed := entity.EnrichedRecord{ContactEmail: &email, ContactEmailSource: entity.EmailSourceAI}

	scrapedTotal, _ := Score(scraped)
	claimedTotal, _ := Score(claimed)

	if scrapedTotal <= claimedTotal {
		t.Fatalf("scraped email should outscore claimed: %d vs %d", scrapedTotal, claimedTotal)
	}
}

func TestHighQualityDomain(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"https://acme.com", true},
		{"http://www.acme.co.id", true},
		{"https://myshop.wordpress.com", false},
		{"notion.site", false},
		{"localhost", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := highQualityDomain(tc.input); got != tc.want {
			t.Fatalf("highQualityDomain(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
