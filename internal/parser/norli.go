package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bokdata/isbn-scraper/internal/models"
)

const norliOrigin = "https://www.norli.no"

// Norli scrapes norli.no search results. Norli's markup carries generated
// class suffixes ("item-imageWrapper-1x9Qz"), matched by prefix. The match
// is confirmed against the queried ISBN via the cover image source, so a
// fuzzy search hit for a different book is rejected.
type Norli struct{}

func NewNorli() *Norli {
	return &Norli{}
}

func (n *Norli) Name() string { return "norli.no" }

func (n *Norli) SearchURL(isbn string) string {
	return norliOrigin + "/search?query=" + url.QueryEscape(isbn)
}

func (n *Norli) ConsentSelector() string {
	return "#CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll"
}

func (n *Norli) ReadySelector() string { return `div[class*="item-imageWrapper-"]` }

func (n *Norli) Extract(html string, isbn string) models.SiteResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.EmptySiteResult()
	}

	wrapper := findClassPrefix(doc.Selection, "div", "item-imageWrapper-").First()
	if wrapper.Length() == 0 {
		return models.EmptySiteResult()
	}

	cover := wrapper.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		return ok && strings.Contains(src, isbn)
	})
	if cover.Length() == 0 {
		return models.EmptySiteResult()
	}

	res := models.EmptySiteResult()

	link := wrapper.Find("a").First()
	if title := strings.TrimSpace(link.AttrOr("aria-label", "")); title != "" {
		res.Title = title
	}

	if authors := cleanText(findClassPrefix(wrapper, "div", "itemNorli-authorName-").First()); authors != "" {
		res.Authors = authors
	}

	res.Price = ParsePrice(findClassPrefix(wrapper, "span", "productPrice-price-").First().Text())

	if href := link.AttrOr("href", ""); href != "" {
		res.ProductURL = absoluteURL(norliOrigin, href)
	}

	return res
}
