package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitecrawl"
)

// Normalizer turns raw hrefs into canonical same-host URLs for one seed.
// It is safe for concurrent use; it holds no mutable state.
type Normalizer struct {
	seed *url.URL
}

// NewNormalizer parses seed, which must be an absolute http or https URL.
func NewNormalizer(seed string) (*Normalizer, error) {
	u, err := url.Parse(strings.TrimSpace(seed))
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid seed URL %q: %v", seed, err)
	}
	if !isHTTPScheme(u.Scheme) || u.Host == "" {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "seed URL %q must be an absolute http or https URL", seed)
	}
	u.Host = canonicalHost(u)
	u.Fragment = ""
	u.RawFragment = ""
	stripTrailingSlash(u)
	return &Normalizer{seed: u}, nil
}

// Seed returns the canonical form of the seed URL.
// The bare host root is represented without a trailing slash.
func (n *Normalizer) Seed() string {
	return n.seed.String()
}

// Origin returns the seed's scheme and host, e.g. "https://example.com".
func (n *Normalizer) Origin() string {
	return n.seed.Scheme + "://" + n.seed.Host
}

// Host returns the seed's host, including any non-default port.
func (n *Normalizer) Host() string {
	return n.seed.Host
}

// Normalize classifies raw. It returns either the canonical URL or a
// *sitecrawl.Rejection naming the first rule that refused the link.
//
// Rules, in order:
//  1. empty or whitespace-only
//  2. fragment-only ("#...") or placeholder ("$...")
//  3. mailto:, tel:, sms:
//  4. explicit http(s) link to another host
//  5. host-relative links ("/...") get the seed origin prepended
//  6. the fragment and one trailing slash are dropped
//  7. a path with no non-empty segments is refused
//
// Anything that does not then parse as an absolute URL on the seed host
// is malformed.
func (n *Normalizer) Normalize(raw string) (string, error) {
	reject := func(reason sitecrawl.RejectReason) (string, error) {
		return "", &sitecrawl.Rejection{Link: raw, Reason: reason}
	}

	link := strings.TrimSpace(raw)
	if link == "" {
		return reject(sitecrawl.RejectEmpty)
	}
	if strings.HasPrefix(link, "#") || strings.HasPrefix(link, "$") {
		return reject(sitecrawl.RejectFragmentOrPlaceholder)
	}

	lower := strings.ToLower(link)
	for _, scheme := range []string{"mailto:", "tel:", "sms:"} {
		if strings.HasPrefix(lower, scheme) {
			return reject(sitecrawl.RejectNonHTTPScheme)
		}
	}

	explicit := strings.HasPrefix(lower, "http:") || strings.HasPrefix(lower, "https:")
	if !explicit && strings.HasPrefix(link, "/") {
		link = n.Origin() + link
	}

	u, err := url.Parse(link)
	if err != nil {
		return reject(sitecrawl.RejectMalformed)
	}
	// Only mailto:, tel: and sms: count as non-HTTP schemes; anything else
	// that is not http(s) is malformed.
	if !isHTTPScheme(u.Scheme) || u.Host == "" {
		return reject(sitecrawl.RejectMalformed)
	}
	u.Host = canonicalHost(u)
	if u.Host != n.seed.Host {
		return reject(sitecrawl.RejectCrossHost)
	}

	u.Fragment = ""
	u.RawFragment = ""
	stripTrailingSlash(u)

	if !hasPathSegments(u.Path) {
		return reject(sitecrawl.RejectNoPathSegments)
	}

	return u.String(), nil
}

// Normalize classifies raw against seed. See Normalizer.Normalize.
func Normalize(raw, seed string) (string, error) {
	n, err := NewNormalizer(seed)
	if err != nil {
		return "", &sitecrawl.Rejection{Link: raw, Reason: sitecrawl.RejectMalformed}
	}
	return n.Normalize(raw)
}

func isHTTPScheme(scheme string) bool {
	return strings.EqualFold(scheme, "http") || strings.EqualFold(scheme, "https")
}

// canonicalHost lower-cases the host and drops the scheme's default port,
// so http://example.com:80 and https://example.com:443 match example.com.
func canonicalHost(u *url.URL) string {
	host := strings.ToLower(u.Host)
	port := u.Port()
	if (port == "80" && strings.EqualFold(u.Scheme, "http")) ||
		(port == "443" && strings.EqualFold(u.Scheme, "https")) {
		return strings.TrimSuffix(host, ":"+port)
	}
	return host
}

// stripTrailingSlash removes exactly one trailing slash from the path.
func stripTrailingSlash(u *url.URL) {
	if strings.HasSuffix(u.Path, "/") {
		u.Path = u.Path[:len(u.Path)-1]
		if u.RawPath != "" {
			u.RawPath = strings.TrimSuffix(u.RawPath, "/")
		}
	}
}

func hasPathSegments(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return true
		}
	}
	return false
}
