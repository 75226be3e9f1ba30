package recommend

import (
	"fmt"

	"shelfmate/backend/internal/model"
)

const (
	maxSearchSources         = 5
	sourcesPerRecommendation = 2
)

// marketplaceURL is the primary used-book marketplace lookup for an ISBN-13.
func marketplaceURL(isbn13 string) string {
	return "https://www.abebooks.com/servlet/SearchResults?isbn=" + isbn13
}

// secondaryMarketplaceURL is the alternate marketplace lookup.
func secondaryMarketplaceURL(isbn13 string) string {
	return "https://www.biblio.com/search.php?stage=1&isbn=" + isbn13
}

// SynthesizeSources derives supporting citations from the final
// recommendation set: two canonical marketplace lookups per recommendation,
// capped at five entries overall. Pure and deterministic.
func SynthesizeSources(recs []model.Recommendation) []model.SearchSource {
	sources := make([]model.SearchSource, 0, maxSearchSources)
	for _, rec := range recs {
		urls := [sourcesPerRecommendation]string{
			marketplaceURL(rec.ISBN13),
			secondaryMarketplaceURL(rec.ISBN13),
		}
		names := [sourcesPerRecommendation]string{"AbeBooks", "Biblio"}

		for i := 0; i < sourcesPerRecommendation; i++ {
			if len(sources) >= maxSearchSources {
				return sources
			}
			snippet := fmt.Sprintf("Marketplace listings for %q by %s (ISBN %s).",
				rec.Title, rec.Author, rec.ISBN13)
			sources = append(sources, model.SearchSource{
				URL:        urls[i],
				Title:      fmt.Sprintf("%s: %s", names[i], rec.Title),
				Content:    snippet,
				StartIndex: 0,
				EndIndex:   len(snippet),
			})
		}
	}
	return sources
}
