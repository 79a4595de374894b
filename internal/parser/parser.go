package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bokdata/isbn-scraper/internal/models"
)

// Site is the extraction strategy for one bookstore. Extract never fails:
// every internal lookup problem collapses into sentinel fields, so the
// orchestrator can call it unconditionally.
type Site interface {
	Name() string
	SearchURL(isbn string) string
	ConsentSelector() string
	ReadySelector() string
	Extract(html string, isbn string) models.SiteResult
}

// Sites returns the default adapter registry. Order matters only for the
// title tie-break during aggregation.
func Sites() []Site {
	return []Site{NewArk(), NewNorli(), NewAdlibris()}
}

// findClassPrefix matches elements of the given tag whose class attribute
// contains at least one token starting with prefix. The bookstores generate
// unstable class suffixes (e.g. "productPrice-price-3kT9x"), so exact-class
// selectors break between deployments.
func findClassPrefix(root *goquery.Selection, tag, prefix string) *goquery.Selection {
	return root.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok {
			return false
		}
		for _, token := range strings.Fields(class) {
			if strings.HasPrefix(token, prefix) {
				return true
			}
		}
		return false
	})
}

// findClassContains matches elements of the given tag whose class attribute
// contains the given token.
func findClassContains(root *goquery.Selection, tag, token string) *goquery.Selection {
	return root.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok {
			return false
		}
		for _, t := range strings.Fields(class) {
			if t == token {
				return true
			}
		}
		return false
	})
}

// ParsePrice normalizes a displayed price: the ",-" currency marker and
// surrounding whitespace are stripped, and the remainder is parsed only if
// it is all digits. Anything else is 0, never an error.
func ParsePrice(text string) float64 {
	t := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ",-"))
	if t == "" {
		return 0
	}
	for _, r := range t {
		if r < '0' || r > '9' {
			return 0
		}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0
	}
	return v
}

// absoluteURL prefixes site-relative links with the site origin.
func absoluteURL(origin, href string) string {
	if href == "" {
		return models.NotFound
	}
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	return href
}

// nearestAnchor walks up from s looking for the closest enclosing element
// that contains a link, and returns its href. Used where a site's markup
// places the product link next to, not around, the matched element.
func nearestAnchor(s *goquery.Selection) string {
	for p, depth := s, 0; p.Length() > 0 && depth < 6; p, depth = p.Parent(), depth+1 {
		if goquery.NodeName(p) == "a" {
			if href, ok := p.Attr("href"); ok {
				return href
			}
		}
		if a := p.Find("a[href]").First(); a.Length() > 0 {
			return a.AttrOr("href", "")
		}
	}
	return ""
}

func cleanText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
