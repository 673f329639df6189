package scraper

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"  Info@Acme.COM ", "info@acme.com", true},
		{"sales@acme.co.uk", "sales@acme.co.uk", true},
		{"not-an-email", "", false},
		{"someone@example.com", "", false},
		{"test@acme.com", "", false},
		{"logo@2x.png", "", false},
		{"user@-bad-.com", "", false},
		{"user@nodot", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := normalizeEmail(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("normalizeEmail(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestRankEmails(t *testing.T) {
	t.Run("priority locals first", func(t *testing.T) {
		got := rankEmails([]string{"noreply@x.com", "info@x.com", "random@x.com"})
		if len(got) != 2 || got[0] != "info@x.com" || got[1] != "random@x.com" {
			t.Fatalf("unexpected ranking: %v", got)
		}
	})

	t.Run("first-seen order breaks ties", func(t *testing.T) {
		got := rankEmails([]string{"hello@x.com", "contact@x.com", "a@x.com", "b@x.com"})
		want := []string{"hello@x.com", "contact@x.com", "a@x.com", "b@x.com"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("unexpected order: %v", got)
			}
		}
	})

	t.Run("noreply kept when nothing better", func(t *testing.T) {
		got := rankEmails([]string{"noreply@x.com"})
		if len(got) != 1 || got[0] != "noreply@x.com" {
			t.Fatalf("expected noreply kept as last resort, got %v", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := rankEmails(nil); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}

func TestMatchSocialLink(t *testing.T) {
	cases := []struct {
		href     string
		platform string
		ok       bool
	}{
		{"https://www.linkedin.com/company/acme", "linkedin", true},
		{"https://x.com/acme", "twitter", true},
		{"https://youtu.be/abc123", "youtube", true},
		{"https://twitter.com/intent/tweet?text=hi", "", false},
		{"https://www.facebook.com/sharer/sharer.php?u=x", "", false},
		{"https://acme.com/about", "", false},
		{"/relative/path", "", false},
	}

	for _, tc := range cases {
		platform, _, ok := matchSocialLink(tc.href)
		if ok != tc.ok || platform != tc.platform {
			t.Fatalf("matchSocialLink(%q) = (%q, %v), want (%q, %v)", tc.href, platform, ok, tc.platform, tc.ok)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := normalizePhone("+1 415 555 2671", "US"); got != "+14155552671" {
		t.Fatalf("unexpected phone: %q", got)
	}
	if got := normalizePhone("not a phone", "US"); got != "" {
		t.Fatalf("expected empty for invalid, got %q", got)
	}
	if got := normalizePhone("", "US"); got != "" {
		t.Fatalf("expected empty for blank, got %q", got)
	}
}
