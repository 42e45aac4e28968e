// Package fs stores the crawled corpus on the local filesystem.
package fs

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitecrawl"
)

// IndexName is the file name, without extension, of a directory index page.
const IndexName = "_index"

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.html
//
// The root and any path ending in a slash map to IndexName. A last
// segment starting with "_" gets one more "_", so no page path can
// produce IndexName. A query string is folded into the file name as a
// hash so that /search?q=a and /search?q=b do not collide.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	path := strings.TrimPrefix(u.Path, "/")

	dir, file := "", path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		dir, file = path[:i+1], path[i+1:]
	}
	switch {
	case file == "":
		file = IndexName
	case strings.HasPrefix(file, "_"):
		file = "_" + file
	}
	path = dir + file

	if u.RawQuery != "" {
		path += fmt.Sprintf("-%016x", xxhash.Sum64String(u.RawQuery))
	}
	path += ".html"

	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "path traversal in page URL %q", rawURL)
	}
	return path, nil
}
