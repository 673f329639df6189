package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func htmlResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const homepageHTML = `<html><body>
<a href="mailto:noreply@acme.com">email us</a>
<a href="mailto:info@acme.com?subject=hi">info</a>
<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
<a href="https://x.com/acme">X</a>
<a href="https://twitter.com/acme-old">old twitter</a>
<a href="https://www.facebook.com/sharer/sharer.php?u=acme.com">share</a>
<a href="/contact">Contact Us</a>
<p>Write to random@acme.com or visit us.</p>
</body></html>`

const contactHTML = `<html><body>
<a href="mailto:info@acme.com">info again</a>
<a href="mailto:sales@acme.com">sales</a>
<a href="tel:+14155552671">call</a>
<a href="https://www.youtube.com/@acme">YouTube</a>
</body></html>`

func newFakeExtractor(rt roundTripFunc) *Extractor {
	return New(
		WithHTTPClient(&http.Client{Transport: rt}),
		WithHostDelay(time.Millisecond),
		WithTimeout(time.Second),
	)
}

func TestExtract(t *testing.T) {
	var paths []string
	extractor := newFakeExtractor(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		if req.URL.Path == "/contact" {
			return htmlResponse(contactHTML), nil
		}
		return htmlResponse(homepageHTML), nil
	})

	result := extractor.Extract(context.Background(), "acme.com")
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if len(paths) != 2 || paths[1] != "/contact" {
		t.Fatalf("expected homepage + contact fetches, got %v", paths)
	}

	// Priority locals first, noreply dropped because better candidates exist.
	want := []string{"info@acme.com", "sales@acme.com", "random@acme.com"}
	if len(result.Emails) != len(want) {
		t.Fatalf("unexpected emails: %v", result.Emails)
	}
	for i, email := range want {
		if result.Emails[i] != email {
			t.Fatalf("expected email %q at %d, got %v", email, i, result.Emails)
		}
	}

	if result.Socials["linkedin"] != "https://www.linkedin.com/company/acme" {
		t.Fatalf("unexpected linkedin link: %q", result.Socials["linkedin"])
	}
	// First match per platform wins; x.com maps to twitter.
	if result.Socials["twitter"] != "https://x.com/acme" {
		t.Fatalf("unexpected twitter link: %q", result.Socials["twitter"])
	}
	if _, ok := result.Socials["facebook"]; ok {
		t.Fatalf("share widget link must not count as a facebook profile")
	}
	if result.Socials["youtube"] == "" {
		t.Fatalf("expected youtube link from contact page")
	}

	if len(result.Phones) != 1 || result.Phones[0] != "+14155552671" {
		t.Fatalf("unexpected phones: %v", result.Phones)
	}
}

func TestExtractFailures(t *testing.T) {
	t.Run("connection error", func(t *testing.T) {
		extractor := newFakeExtractor(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})
		result := extractor.Extract(context.Background(), "https://unreachable.test")
		if result.Success || result.Reason == "" {
			t.Fatalf("expected failure with reason, got %+v", result)
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		extractor := newFakeExtractor(func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusServiceUnavailable, Body: io.NopCloser(strings.NewReader(""))}, nil
		})
		result := extractor.Extract(context.Background(), "https://acme.com")
		if result.Success || result.Reason == "" {
			t.Fatalf("expected failure, got %+v", result)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		extractor := newFakeExtractor(nil)
		result := extractor.Extract(context.Background(), "   ")
		if result.Success || result.Reason == "" {
			t.Fatalf("expected failure, got %+v", result)
		}
	})

	t.Run("contact page failure does not fail the scrape", func(t *testing.T) {
		extractor := newFakeExtractor(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path == "/contact" {
				return nil, errors.New("timeout")
			}
			return htmlResponse(homepageHTML), nil
		})
		result := extractor.Extract(context.Background(), "acme.com")
		if !result.Success {
			t.Fatalf("expected success despite contact page failure, got %+v", result)
		}
		if len(result.Emails) == 0 {
			t.Fatalf("expected homepage emails to survive")
		}
	})
}

func TestHostPacing(t *testing.T) {
	var calls int
	extractor := newFakeExtractor(func(req *http.Request) (*http.Response, error) {
		calls++
		return htmlResponse(homepageHTML), nil
	})

	start := time.Now()
	_ = extractor.Extract(context.Background(), "acme.com")
	if calls < 2 {
		t.Fatalf("expected at least two fetches, got %d", calls)
	}
	// Second same-host request must wait at least one delay tick.
	if elapsed := time.Since(start); elapsed < time.Millisecond {
		t.Fatalf("expected per-host delay to apply, elapsed %s", elapsed)
	}
}

func TestSanitizeURL(t *testing.T) {
	u, err := sanitizeURL("acme.com/path")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "acme.com" {
		t.Fatalf("unexpected url: %s", u)
	}

	if _, err := sanitizeURL(""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
