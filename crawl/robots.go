package crawl

import (
	"bufio"
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/sitecrawl"
)

// robotsDirective is the only robots.txt directive honoured. Matching is
// case-sensitive; user-agent groups, Allow and wildcards are not supported.
const robotsDirective = "Disallow:"

// DisallowSet is the set of path prefixes excluded by robots.txt.
// The zero value disallows nothing. It is not modified after parsing.
type DisallowSet map[string]struct{}

// ParseRobots collects the Disallow prefixes of a robots.txt body.
// A blank "Disallow:" means "disallow nothing" and is skipped.
func ParseRobots(body string) DisallowSet {
	set := make(DisallowSet)
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, robotsDirective) {
			continue
		}
		prefix := strings.TrimSpace(line[strings.Index(line, ":")+1:])
		if prefix == "" {
			continue
		}
		set[prefix] = struct{}{}
	}
	return set
}

// IsDisallowed reports whether the path of rawURL starts with any prefix
// in the set. A URL that cannot be parsed yields a malformed rejection.
func (s DisallowSet) IsDisallowed(rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, &sitecrawl.Rejection{Link: rawURL, Reason: sitecrawl.RejectMalformed}
	}
	path := u.EscapedPath()
	for prefix := range s {
		if strings.HasPrefix(path, prefix) {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of distinct prefixes.
func (s DisallowSet) Len() int {
	return len(s)
}

// LoadRobots fetches origin/robots.txt and parses it.
// Any transport failure or non-2xx response yields an empty set, so the
// crawl proceeds unrestricted rather than aborting.
func LoadRobots(ctx context.Context, fetcher sitecrawl.Fetcher, origin string) DisallowSet {
	resp, err := fetcher.Fetch(ctx, strings.TrimSuffix(origin, "/")+"/robots.txt")
	if err != nil || !resp.OK() {
		return DisallowSet{}
	}
	return ParseRobots(resp.Body)
}
