package recommend

import (
	"fmt"
	"strings"

	"shelfmate/backend/internal/model"
)

const tasteEchoLimit = 50

// Genre is the coarse bucket the fallback classifier sorts a collection into.
type Genre string

const (
	GenreTechnical Genre = "technical"
	GenreGeneral   Genre = "general"
)

// GenreClassifier decides which curated fallback set fits a collection
// sample. The default implementation is a keyword sniff over sample titles;
// the interface keeps orchestration independent of that heuristic.
type GenreClassifier interface {
	Classify(sample DetailedSample) Genre
}

// KeywordClassifier flags a collection as technical when any sample title
// contains a programming-adjacent keyword.
type KeywordClassifier struct{}

var technicalKeywords = []string{
	"programming", "software", "code", "coding", "algorithm",
	"computer", "engineering", "python", "javascript", "database",
}

func (KeywordClassifier) Classify(sample DetailedSample) Genre {
	for _, title := range sample.Titles {
		lower := strings.ToLower(title)
		for _, kw := range technicalKeywords {
			if strings.Contains(lower, kw) {
				return GenreTechnical
			}
		}
	}
	return GenreGeneral
}

// FallbackGenerator synthesizes recommendations locally when the remote call
// or its parsing fails. It never fails, never touches the network, and always
// returns at least one well-formed recommendation.
type FallbackGenerator struct {
	classifier GenreClassifier
}

// NewFallbackGenerator creates a generator; a nil classifier defaults to the
// keyword heuristic.
func NewFallbackGenerator(classifier GenreClassifier) *FallbackGenerator {
	if classifier == nil {
		classifier = KeywordClassifier{}
	}
	return &FallbackGenerator{classifier: classifier}
}

// Generate produces the deterministic fallback set for a request. Collection
// mode consults the classifier; taste mode echoes a truncated copy of the
// taste text so the user can see what the suggestion was based on.
func (g *FallbackGenerator) Generate(req model.RecommendationRequest, analysis CollectionAnalysis, sample DetailedSample) []model.Recommendation {
	if req.Mode == model.ModeTaste {
		return []model.Recommendation{tasteFallback(req.Taste)}
	}

	if len(sample.Titles) == 0 {
		return []model.Recommendation{universalFallback()}
	}

	if g.classifier.Classify(sample) == GenreTechnical {
		return technicalFallbacks()
	}
	return []model.Recommendation{profileFallback(analysis)}
}

func tasteFallback(taste string) model.Recommendation {
	echo := strings.TrimSpace(taste)
	if runes := []rune(echo); len(runes) > tasteEchoLimit {
		echo = string(runes[:tasteEchoLimit])
	}
	rec := model.Recommendation{
		ISBN13:         "9780156027328",
		Title:          "The Name of the Rose",
		Author:         "Umberto Eco",
		Publisher:      "Harvest Books",
		Year:           "1983",
		Description:    fmt.Sprintf("A widely loved literary mystery, suggested offline based on your taste: %q.", echo),
		EstimatedValue: "$10-20",
		Availability:   "Common in used bookstores",
	}
	rec.SourcesUsed = marketplaceURL(rec.ISBN13)
	return rec
}

// technicalFallbacks is the curated pair for collections that sniff as
// programming shelves.
func technicalFallbacks() []model.Recommendation {
	recs := []model.Recommendation{
		{
			ISBN13:         "9780135957059",
			Title:          "The Pragmatic Programmer, 20th Anniversary Edition",
			Author:         "David Thomas, Andrew Hunt",
			Publisher:      "Addison-Wesley",
			Year:           "2019",
			Description:    "A staple for any software shelf, suggested offline from the technical lean of your collection.",
			EstimatedValue: "$35-50",
			Availability:   "In print, widely available",
		},
		{
			ISBN13:         "9781449373320",
			Title:          "Designing Data-Intensive Applications",
			Author:         "Martin Kleppmann",
			Publisher:      "O'Reilly Media",
			Year:           "2017",
			Description:    "Modern systems classic, suggested offline from the technical lean of your collection.",
			EstimatedValue: "$40-55",
			Availability:   "In print, widely available",
		},
	}
	for i := range recs {
		recs[i].SourcesUsed = marketplaceURL(recs[i].ISBN13)
	}
	return recs
}

// profileFallback references the collector's own top author and publisher so
// the offline suggestion still feels grounded in their shelf.
func profileFallback(analysis CollectionAnalysis) model.Recommendation {
	author := "your favorite authors"
	if len(analysis.TopAuthors) > 0 {
		author = analysis.TopAuthors[0]
	}
	publisher := ""
	if len(analysis.TopPublishers) > 0 {
		publisher = analysis.TopPublishers[0]
	}

	desc := fmt.Sprintf("An offline suggestion: explore more work connected to %s", author)
	if publisher != "" {
		desc += fmt.Sprintf(", or browse the %s backlist", publisher)
	}
	desc += "."

	rec := model.Recommendation{
		ISBN13:         "9780141439600",
		Title:          "A Tale of Two Cities",
		Author:         "Charles Dickens",
		Publisher:      "Penguin Classics",
		Year:           "2003",
		Description:    desc,
		EstimatedValue: "$8-15",
		Availability:   "Common in used bookstores",
	}
	rec.SourcesUsed = marketplaceURL(rec.ISBN13)
	return rec
}

// universalFallback is the default when the collection has no usable sample
// data at all.
func universalFallback() model.Recommendation {
	rec := model.Recommendation{
		ISBN13:         "9780743273565",
		Title:          "The Great Gatsby",
		Author:         "F. Scott Fitzgerald",
		Publisher:      "Scribner",
		Year:           "2004",
		Description:    "A universally collected classic, suggested offline.",
		EstimatedValue: "$10-18",
		Availability:   "Common in used bookstores",
	}
	rec.SourcesUsed = marketplaceURL(rec.ISBN13)
	return rec
}
