package scraper

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bokdata/isbn-scraper/internal/models"
)

// aggregate folds the per-site results into the record-level title and
// authors. The title is the longest non-sentinel one seen, strict-greater
// comparison so the earliest maximal site wins ties. Length is counted in
// runes, not bytes: æ/ø/å are two bytes each and would skew a byte
// comparison. Authors are the deduplicated union of all per-site author
// lists, sorted so the joined output is deterministic.
func aggregate(results []models.SiteResult) (title, authors string) {
	for _, r := range results {
		if r.HasTitle() && utf8.RuneCountInString(r.Title) > utf8.RuneCountInString(title) {
			title = r.Title
		}
	}

	seen := make(map[string]struct{})
	for _, r := range results {
		if !r.HasAuthors() {
			continue
		}
		for _, name := range strings.Split(r.Authors, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return title, strings.Join(names, ", ")
}
