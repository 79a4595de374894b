package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/bokdata/isbn-scraper/internal/models"
)

const adlibrisHit = `
<span class="search-results__count">1 treff</span>
<ul>
	<li class="search-result__listing-item">
		<div class="product-info">
			<h2><a href="/no/bok/sofies-verden-9788203364881">Sofies verden : roman om filosofiens historie</a></h2>
			<div class="author">
				<a href="/no/sok?author=gaarder">Jostein Gaarder</a>
			</div>
		</div>
		<span class="current-price">199,-</span>
	</li>
</ul>`

func TestAdlibrisExtract(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected models.SiteResult
	}{
		{
			name: "Single hit",
			html: adlibrisHit,
			expected: models.SiteResult{
				Title:      "Sofies verden : roman om filosofiens historie",
				Authors:    "Jostein Gaarder",
				Price:      199,
				ProductURL: "https://www.adlibris.com/no/bok/sofies-verden-9788203364881",
			},
		},
		{
			name: "Multiple hits rejected",
			html: `
				<span class="search-results__count">12 treff</span>
				<li class="search-result__listing-item"><div class="product-info"><h2><a href="/no/bok/a">A</a></h2></div></li>`,
			expected: models.EmptySiteResult(),
		},
		{
			name:     "Missing hit count rejected",
			html:     `<li class="search-result__listing-item"><div class="product-info"><h2><a href="/no/bok/a">A</a></h2></div></li>`,
			expected: models.EmptySiteResult(),
		},
		{
			name: "Multiple authors joined",
			html: `
				<span class="search-results__count">1 treff</span>
				<li class="search-result__listing-item">
					<div class="product-info">
						<h2><a href="/no/bok/antologi-1">Antologi</a></h2>
						<div class="author">
							<a>Jane Doe</a>
							<a>John Smith</a>
						</div>
					</div>
					<span class="current-price">299,-</span>
				</li>`,
			expected: models.SiteResult{
				Title:      "Antologi",
				Authors:    "Jane Doe, John Smith",
				Price:      299,
				ProductURL: "https://www.adlibris.com/no/bok/antologi-1",
			},
		},
	}

	adlibris := NewAdlibris()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adlibris.Extract(tt.html, "9788203364881"))
		})
	}
}

func TestHitCount(t *testing.T) {
	assert.Equal(t, 1, hitCount("1 treff"))
	assert.Equal(t, 12, hitCount("12 treff"))
	assert.Equal(t, 0, hitCount("ingen treff"))
	assert.Equal(t, 0, hitCount(""))
}
