package scraper

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	emailPattern     = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	emailTextPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-']+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	idnaProfile      = idna.Lookup
)

// Local-parts that indicate a monitored inbox; these sort before generic
// addresses.
var priorityLocals = map[string]struct{}{
	"contact": {},
	"info":    {},
	"sales":   {},
	"hello":   {},
}

var placeholderDomains = map[string]struct{}{
	"example.com":    {},
	"example.org":    {},
	"example.net":    {},
	"test.com":       {},
	"email.com":      {},
	"domain.com":     {},
	"yourdomain.com": {},
}

// Image names like logo@2x.png match the loose text pattern; filter them by
// extension.
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// normalizeEmail lowercases, validates shape and domain, and filters obvious
// placeholders. Returns false when the candidate should be discarded.
func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return "", false
	}

	parts := strings.SplitN(email, "@", 2)
	local, domain := parts[0], parts[1]

	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return "", false
		}
	}
	if _, bad := placeholderDomains[domain]; bad {
		return "", false
	}
	if strings.HasPrefix(local, "test") || local == "user" || local == "email" || local == "name" {
		return "", false
	}
	if !isDomainValid(domain) {
		return "", false
	}
	if ascii, err := idnaProfile.ToASCII(domain); err != nil || ascii == "" {
		return "", false
	}
	return email, true
}

// rankEmails orders candidates so that monitored inboxes come first and
// no-reply addresses are dropped when anything better exists. Ties keep
// first-seen order.
func rankEmails(emails []string) []string {
	if len(emails) == 0 {
		return nil
	}

	var priority, generic, noreply []string
	for _, email := range emails {
		local := email[:strings.IndexByte(email, '@')]
		switch {
		case isNoReply(local):
			noreply = append(noreply, email)
		default:
			if _, ok := priorityLocals[local]; ok {
				priority = append(priority, email)
			} else {
				generic = append(generic, email)
			}
		}
	}

	ranked := append(priority, generic...)
	if len(ranked) == 0 {
		return noreply
	}
	return ranked
}

func isNoReply(local string) bool {
	switch local {
	case "noreply", "no-reply", "no_reply", "donotreply", "do-not-reply":
		return true
	}
	return false
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
