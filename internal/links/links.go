package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/league-results/internal/markup"
)

const (
	// LinkText is the marker an anchor's text must contain to be considered.
	LinkText = "html"

	// MaxAncestorDepth bounds how far above an anchor the series marker is
	// searched for. The immediate parent is the first ancestor.
	MaxAncestorDepth = 5
)

// Discover returns the absolute URLs of result links in doc whose
// surrounding markup mentions marker. URLs are returned in document order
// with duplicates removed. Relative hrefs are resolved against baseURL.
func Discover(doc *goquery.Document, baseURL, marker string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	found := make([]string, 0)
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		if !isResultAnchor(a) {
			return
		}
		if !nearMarker(a, marker) {
			return
		}

		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if !seen[abs] {
			seen[abs] = true
			found = append(found, abs)
		}
	})

	return found, nil
}

// isResultAnchor reports whether the anchor's visible text marks a result page.
func isResultAnchor(a *goquery.Selection) bool {
	text := strings.ToLower(strings.TrimSpace(a.Text()))
	return strings.Contains(text, LinkText)
}

// nearMarker walks up from the anchor's parent and reports whether any of the
// first MaxAncestorDepth ancestors contains marker. The walk stops early when
// the document root is passed. The HTML parser inserts a tbody into every
// table, so tbody elements do not count towards the depth.
func nearMarker(a *goquery.Selection, marker string) bool {
	depth := 0
	for parent := a.Parent(); parent.Length() > 0 && depth < MaxAncestorDepth; parent = parent.Parent() {
		if goquery.NodeName(parent) == "tbody" {
			continue
		}
		depth++
		if markup.ContainsFold(markup.StrippedText(parent), marker) {
			return true
		}
	}
	return false
}
