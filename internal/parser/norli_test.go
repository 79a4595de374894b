package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/bokdata/isbn-scraper/internal/models"
)

const norliHit = `
<div class="item-root-2f1">
	<div class="item-imageWrapper-3xYz">
		<a aria-label="Sofies verden" href="/sofies-verden-9788203364881">
			<img src="https://media.norli.no/covers/9788203364881.jpg"/>
		</a>
		<div class="itemNorli-authorName-1ab">Jostein Gaarder</div>
		<span class="productPrice-price-9zz">249,-</span>
	</div>
</div>`

func TestNorliExtract(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		isbn     string
		expected models.SiteResult
	}{
		{
			name: "Cover image matches queried ISBN",
			html: norliHit,
			isbn: "9788203364881",
			expected: models.SiteResult{
				Title:      "Sofies verden",
				Authors:    "Jostein Gaarder",
				Price:      249,
				ProductURL: "https://www.norli.no/sofies-verden-9788203364881",
			},
		},
		{
			name:     "Cover image for a different ISBN is rejected",
			html:     norliHit,
			isbn:     "9788200000000",
			expected: models.EmptySiteResult(),
		},
		{
			name:     "No product wrapper",
			html:     `<div class="searchEmpty-root-1a2">Ingen treff</div>`,
			isbn:     "9788203364881",
			expected: models.EmptySiteResult(),
		},
		{
			name: "Missing price and authors degrade per field",
			html: `
				<div class="item-imageWrapper-77a">
					<a aria-label="Naiv. Super." href="/naiv-super-9788202253929">
						<img src="/covers/9788202253929.jpg"/>
					</a>
				</div>`,
			isbn: "9788202253929",
			expected: models.SiteResult{
				Title:      "Naiv. Super.",
				Authors:    models.NotFound,
				Price:      0,
				ProductURL: "https://www.norli.no/naiv-super-9788202253929",
			},
		},
	}

	norli := NewNorli()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, norli.Extract(tt.html, tt.isbn))
		})
	}
}

func TestNorliSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.norli.no/search?query=9788203364881",
		NewNorli().SearchURL("9788203364881"))
}
