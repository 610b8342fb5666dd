package enrichment

import (
	"net/url"
	"strings"
)

// Traffic sources reported by SourceClassifier.
const (
	SourceDirect   = "Direct"
	SourceSearch   = "Search"
	SourceSocial   = "Social"
	SourceMessage  = "Messaging"
	SourceReferral = "Referral"
)

// SourceClassifier classifies where a visitor came from using the Referer header.
type SourceClassifier struct {
	categories []sourceCategory
}

type sourceCategory struct {
	source  string
	domains []string
}

// NewSourceClassifier creates a classifier with the built in domain lists.
func NewSourceClassifier() *SourceClassifier {
	return &SourceClassifier{
		categories: []sourceCategory{
			{SourceSearch, []string{"google.", "bing.com", "yahoo.com", "duckduckgo.com", "baidu.com", "yandex.", "coccoc.com"}},
			{SourceSocial, []string{"facebook.com", "fb.com", "instagram.com", "tiktok.com", "twitter.com", "x.com", "linkedin.com", "youtube.com", "threads.net", "reddit.com"}},
			{SourceMessage, []string{"zalo.me", "messenger.com", "t.me", "telegram.org", "whatsapp.com", "wa.me", "line.me"}},
		},
	}
}

// ClassifySource returns the traffic source of a referer URL.
func (c *SourceClassifier) ClassifySource(referer string) string {
	if referer == "" {
		return SourceDirect
	}

	parsed, err := url.Parse(referer)
	if err != nil || parsed.Hostname() == "" {
		return SourceDirect
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	for _, category := range c.categories {
		for _, domain := range category.domains {
			if matchDomain(host, domain) {
				return category.source
			}
		}
	}
	return SourceReferral
}

// matchDomain matches host against domain and its subdomains. A domain ending
// in a dot matches any top level domain, e.g. "google." matches google.com.vn.
func matchDomain(host, domain string) bool {
	if strings.HasSuffix(domain, ".") {
		return strings.HasPrefix(host, domain) || strings.Contains(host, "."+domain)
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
