package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/octobees/leadgen/api/internal/entity"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultHostDelay = time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; LeadGenBot/1.0)"
	maxBodyBytes     = 512 * 1024
)

// HTTPClient abstracts HTTP requests to simplify testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Extractor fetches a company homepage plus one contact/about page and pulls
// out candidate emails, phone numbers and social profile links. Requests to
// the same host are serialized with an enforced delay; different hosts are
// independent.
type Extractor struct {
	client        HTTPClient
	timeout       time.Duration
	hostDelay     time.Duration
	userAgent     string
	defaultRegion string

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// Option configures optional Extractor dependencies.
type Option func(*Extractor)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(e *Extractor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithTimeout bounds each page fetch.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithHostDelay sets the enforced pause between requests to the same host.
func WithHostDelay(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.hostDelay = d
		}
	}
}

// WithDefaultRegion sets the region used to parse national phone numbers.
func WithDefaultRegion(region string) Option {
	return func(e *Extractor) {
		region = strings.ToUpper(strings.TrimSpace(region))
		if region != "" {
			e.defaultRegion = region
		}
	}
}

// New builds an extractor with sensible defaults.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client:        &http.Client{Timeout: defaultTimeout},
		timeout:       defaultTimeout,
		hostDelay:     defaultHostDelay,
		userAgent:     defaultUserAgent,
		defaultRegion: "US",
		hosts:         make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scrapes the given website for contact data. It never returns an
// error: a failed fetch yields a ScrapeResult with Success=false and a reason.
func (e *Extractor) Extract(ctx context.Context, website string) entity.ScrapeResult {
	base, err := sanitizeURL(website)
	if err != nil {
		return failure("invalid website url")
	}

	page := newPageData()

	doc, err := e.fetch(ctx, base.String())
	if err != nil {
		zap.L().Debug("scraper: homepage fetch failed",
			zap.String("url", base.String()),
			zap.Error(err),
		)
		return failure(rootReason(err))
	}
	e.collect(doc, base, page)

	// One contact/about subpage at most; its failure does not fail the scrape.
	if contactURL := findContactLink(doc, base); contactURL != "" {
		if sub, err := e.fetch(ctx, contactURL); err == nil {
			e.collect(sub, base, page)
		} else {
			zap.L().Debug("scraper: contact page fetch failed",
				zap.String("url", contactURL),
				zap.Error(err),
			)
		}
	}

	return entity.ScrapeResult{
		Emails:  rankEmails(page.emails),
		Phones:  page.phones,
		Socials: page.socials,
		Success: true,
	}
}

func (e *Extractor) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse url")
	}
	if err := e.waitHost(ctx, u.Hostname()); err != nil {
		return nil, eris.Wrap(err, "scraper: host pacing interrupted")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: create request")
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("scraper: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse html")
	}
	return doc, nil
}

// waitHost blocks until the per-host limiter grants a slot.
func (e *Extractor) waitHost(ctx context.Context, host string) error {
	e.mu.Lock()
	limiter, ok := e.hosts[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(e.hostDelay), 1)
		e.hosts[host] = limiter
	}
	e.mu.Unlock()

	return limiter.Wait(ctx)
}

type pageData struct {
	emails     []string
	seenEmails map[string]struct{}
	phones     []string
	seenPhones map[string]struct{}
	socials    map[string]string
}

func newPageData() *pageData {
	return &pageData{
		seenEmails: make(map[string]struct{}),
		seenPhones: make(map[string]struct{}),
		socials:    make(map[string]string),
	}
}

func (d *pageData) addEmail(raw string) {
	email, ok := normalizeEmail(raw)
	if !ok {
		return
	}
	if _, dup := d.seenEmails[email]; dup {
		return
	}
	d.seenEmails[email] = struct{}{}
	d.emails = append(d.emails, email)
}

func (d *pageData) addPhone(raw, region string) {
	phone := normalizePhone(raw, region)
	if phone == "" {
		return
	}
	if _, dup := d.seenPhones[phone]; dup {
		return
	}
	d.seenPhones[phone] = struct{}{}
	d.phones = append(d.phones, phone)
}

func (d *pageData) addSocial(platform, link string) {
	if _, exists := d.socials[platform]; exists {
		return
	}
	d.socials[platform] = link
}

// collect walks anchors and page text accumulating contact candidates.
func (e *Extractor) collect(doc *goquery.Document, base *url.URL, page *pageData) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		switch {
		case strings.HasPrefix(href, "mailto:"):
			addr := strings.TrimPrefix(href, "mailto:")
			if idx := strings.IndexByte(addr, '?'); idx >= 0 {
				addr = addr[:idx]
			}
			page.addEmail(addr)
		case strings.HasPrefix(href, "tel:"):
			page.addPhone(strings.TrimPrefix(href, "tel:"), e.defaultRegion)
		default:
			if platform, link, ok := matchSocialLink(href); ok {
				page.addSocial(platform, link)
			}
		}
	})

	for _, candidate := range emailTextPattern.FindAllString(doc.Text(), -1) {
		page.addEmail(candidate)
	}
}

// findContactLink returns the first same-host anchor pointing at a contact or
// about page, or "" when none exists.
func findContactLink(doc *goquery.Document, base *url.URL) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return true
		}

		label := strings.ToLower(href + " " + s.Text())
		if !strings.Contains(label, "contact") && !strings.Contains(label, "about") {
			return true
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(linkURL)
		if abs.Host != base.Host {
			return true
		}
		abs.Fragment = ""
		found = abs.String()
		return false
	})
	return found
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, eris.New("scraper: empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, eris.New("scraper: invalid url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		u.Scheme = "https"
	}
	return u, nil
}

func failure(reason string) entity.ScrapeResult {
	return entity.ScrapeResult{
		Socials: map[string]string{},
		Success: false,
		Reason:  reason,
	}
}

// rootReason flattens a wrapped error into a short caller-safe string.
func rootReason(err error) string {
	if err == nil {
		return ""
	}
	root := eris.Cause(err)
	if root == nil {
		root = err
	}
	msg := root.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
