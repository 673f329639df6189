package scraper

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// normalizePhone parses a raw phone candidate and returns it in E.164 form,
// or "" when the number is not valid.
func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
