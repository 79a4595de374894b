package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bokdata/isbn-scraper/internal/models"
)

const arkOrigin = "https://www.ark.no"

// Ark scrapes ark.no search results. The search page lists product cards
// with an h3 title, a tailwind-styled author line and a
// product-price-current span.
type Ark struct {
	// requireSingle rejects pages that do not show exactly one product
	// card, so an ambiguous ISBN search degrades to sentinels instead of
	// picking an arbitrary match.
	requireSingle bool
}

func NewArk() *Ark {
	return &Ark{requireSingle: true}
}

func (a *Ark) Name() string { return "ark.no" }

func (a *Ark) SearchURL(isbn string) string {
	return arkOrigin + "/search?text=" + url.QueryEscape(isbn)
}

func (a *Ark) ConsentSelector() string { return "#onetrust-accept-btn-handler" }

func (a *Ark) ReadySelector() string { return "span.product-price-current" }

func (a *Ark) Extract(html string, isbn string) models.SiteResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.EmptySiteResult()
	}

	prices := doc.Find("span.product-price-current")
	if a.requireSingle && prices.Length() != 1 {
		return models.EmptySiteResult()
	}

	res := models.EmptySiteResult()

	if title := cleanText(doc.Find("h3").First()); title != "" {
		res.Title = title
	}

	if authors := cleanText(findClassContains(doc.Selection, "div", "text-cap").First()); authors != "" {
		res.Authors = authors
	}

	price := prices.First()
	res.Price = ParsePrice(price.Text())

	if href := nearestAnchor(price); href != "" {
		res.ProductURL = absoluteURL(arkOrigin, href)
	}

	return res
}
