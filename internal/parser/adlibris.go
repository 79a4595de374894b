package parser

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bokdata/isbn-scraper/internal/models"
)

const adlibrisOrigin = "https://www.adlibris.com"

// Adlibris scrapes adlibris.com/no search results. The page reports a hit
// count next to the listing; the count gates extraction when the strict
// single-result policy is on.
type Adlibris struct {
	requireSingle bool
}

func NewAdlibris() *Adlibris {
	return &Adlibris{requireSingle: true}
}

func (a *Adlibris) Name() string { return "adlibris.no" }

func (a *Adlibris) SearchURL(isbn string) string {
	return adlibrisOrigin + "/no/sok?q=" + url.QueryEscape(isbn)
}

func (a *Adlibris) ConsentSelector() string { return "#onetrust-accept-btn-handler" }

func (a *Adlibris) ReadySelector() string { return "li.search-result__listing-item" }

func (a *Adlibris) Extract(html string, isbn string) models.SiteResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.EmptySiteResult()
	}

	if a.requireSingle {
		stats := cleanText(doc.Find("span.search-results__count").First())
		if hitCount(stats) != 1 {
			return models.EmptySiteResult()
		}
	}

	card := doc.Find("li.search-result__listing-item").First()
	if card.Length() == 0 {
		return models.EmptySiteResult()
	}

	res := models.EmptySiteResult()

	link := card.Find("div.product-info h2 a").First()
	if title := cleanText(link); title != "" {
		res.Title = title
	}

	var names []string
	card.Find("div.product-info div.author a").Each(func(_ int, s *goquery.Selection) {
		if name := cleanText(s); name != "" {
			names = append(names, name)
		}
	})
	if len(names) > 0 {
		res.Authors = strings.Join(names, ", ")
	}

	res.Price = ParsePrice(card.Find("span.current-price").First().Text())

	if href := link.AttrOr("href", ""); href != "" {
		res.ProductURL = absoluteURL(adlibrisOrigin, href)
	}

	return res
}

// hitCount parses the leading integer of a hit-count label ("3 treff").
func hitCount(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}
