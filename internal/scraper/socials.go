package scraper

import (
	"net/url"
	"strings"
)

var socialDomains = map[string]string{
	"linkedin.com":  "linkedin",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"facebook.com":  "facebook",
	"instagram.com": "instagram",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
}

// Share widgets point at the platform but not at a profile.
var sharePathPrefixes = []string{"/share", "/sharer", "/intent", "/shareArticle"}

// matchSocialLink reports whether href points at a supported social platform
// and returns the platform name and the cleaned URL.
func matchSocialLink(href string) (string, string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Host == "" {
		return "", "", false
	}

	platform, ok := matchSocialHost(u.Hostname())
	if !ok {
		return "", "", false
	}
	for _, prefix := range sharePathPrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			return "", "", false
		}
	}

	u.Fragment = ""
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return platform, u.String(), true
}

func matchSocialHost(host string) (string, bool) {
	host = strings.ToLower(strings.Trim(strings.TrimSpace(host), "."))
	if host == "" {
		return "", false
	}
	for domain, platform := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform, true
		}
	}
	return "", false
}
