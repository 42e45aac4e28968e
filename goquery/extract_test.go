package goquery_test

import (
	"slices"
	"testing"

	"github.com/fwojciec/sitecrawl/goquery"
	"github.com/stretchr/testify/assert"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("yields hrefs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav>
	<a href="/docs/intro">Introduction</a>
	<a href='/docs/guide'>Guide</a>
</nav>
<main>
	<p>See <A HREF="/docs/section1">Section 1</A>.</p>
	<a name="anchor">no href</a>
</main>
</body>
</html>`

		got := slices.Collect(goquery.NewLinkExtractor().ExtractLinks(html))

		assert.Equal(t, []string{"/docs/intro", "/docs/guide", "/docs/section1"}, got)
	})

	t.Run("skips anchors inside comments", func(t *testing.T) {
		t.Parallel()

		html := `<!-- <a href="/hidden">old</a> --><a href="/shown">new</a>`

		got := slices.Collect(goquery.NewLinkExtractor().ExtractLinks(html))

		assert.Equal(t, []string{"/shown"}, got)
	})

	t.Run("yields empty hrefs", func(t *testing.T) {
		t.Parallel()

		got := slices.Collect(goquery.NewLinkExtractor().ExtractLinks(`<a href="">self</a>`))

		assert.Equal(t, []string{""}, got)
	})

	t.Run("custom selector narrows the scope", func(t *testing.T) {
		t.Parallel()

		html := `<nav><a href="/nav">n</a></nav><main><a href="/main">m</a></main>`
		extractor := &goquery.LinkExtractor{Selector: "main a[href]"}

		got := slices.Collect(extractor.ExtractLinks(html))

		assert.Equal(t, []string{"/main"}, got)
	})

	t.Run("zero value uses the default selector", func(t *testing.T) {
		t.Parallel()

		var extractor goquery.LinkExtractor

		got := slices.Collect(extractor.ExtractLinks(`<a href="/a">a</a>`))

		assert.Equal(t, []string{"/a"}, got)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		t.Parallel()

		seq := goquery.NewLinkExtractor().ExtractLinks(`<a href="/a"></a><a href="/b"></a>`)

		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		t.Parallel()

		seq := goquery.NewLinkExtractor().ExtractLinks(`<a href="/a"></a><a href="/b"></a><a href="/c"></a>`)

		var got []string
		for link := range seq {
			got = append(got, link)
			break
		}

		assert.Equal(t, []string{"/a"}, got)
	})
}
