package recommend

import (
	"strconv"
	"strings"

	"shelfmate/backend/internal/model"
)

const (
	maxTopAuthors    = 5
	maxTopPublishers = 3
	maxYearRanges    = 3
	maxBindings      = 2
	maxLanguages     = 2

	maxSampleTitles     = 8
	maxSampleAuthors    = 8
	maxSamplePublishers = 5
	maxSampleYears      = 8
)

// CollectionAnalysis is the statistical taste profile of a user's owned
// books. It is recomputed on every request and never persisted.
type CollectionAnalysis struct {
	TotalBooks        int
	TopAuthors        []string
	TopPublishers     []string
	CommonYearRanges  []string
	PreferredBindings []string
	CommonLanguages   []string
	AvgPrice          float64
	HasFirstEditions  bool
}

// DetailedSample carries bounded raw values from the collection to enrich
// prompts beyond the aggregate profile.
type DetailedSample struct {
	Titles     []string
	Authors    []string
	Publishers []string
	Languages  []string
	Years      []string
	Bindings   []string
}

// frequencyCounter counts string occurrences while remembering insertion
// order, so frequency ties resolve to whichever value was seen first.
type frequencyCounter struct {
	counts map[string]int
	order  []string
}

func newFrequencyCounter() *frequencyCounter {
	return &frequencyCounter{counts: make(map[string]int)}
}

func (f *frequencyCounter) add(value string) {
	if _, seen := f.counts[value]; !seen {
		f.order = append(f.order, value)
	}
	f.counts[value]++
}

// top returns up to n values sorted by descending frequency. The sort is a
// stable insertion over the first-encountered order, so ties keep it.
func (f *frequencyCounter) top(n int) []string {
	ranked := make([]string, len(f.order))
	copy(ranked, f.order)
	// Insertion sort keeps the pass stable without pulling in sort.SliceStable
	// for a handful of entries.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && f.counts[ranked[j]] > f.counts[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Analyze aggregates a user's book records into a taste profile and a raw
// sample. Wishlist-tagged records are excluded before any counting. Returns
// ErrEmptyCollection when no owned books remain.
func Analyze(records []model.BookRecord) (CollectionAnalysis, DetailedSample, error) {
	var owned []model.BookRecord
	for _, rec := range records {
		if !rec.IsWishlist() {
			owned = append(owned, rec)
		}
	}
	if len(owned) == 0 {
		return CollectionAnalysis{}, DetailedSample{}, ErrEmptyCollection
	}

	authors := newFrequencyCounter()
	publishers := newFrequencyCounter()

	analysis := CollectionAnalysis{TotalBooks: len(owned)}
	sample := DetailedSample{}

	var priceSum float64
	var priceCount int

	for _, rec := range owned {
		for _, name := range splitAuthors(rec.Authors) {
			authors.add(name)
		}
		if p := strings.TrimSpace(rec.Publisher); p != "" {
			publishers.add(p)
		}

		if bucket, ok := decadeBucket(rec.Year); ok {
			analysis.CommonYearRanges = appendDistinct(analysis.CommonYearRanges, bucket, maxYearRanges)
		}
		if b := strings.TrimSpace(rec.Binding); b != "" {
			analysis.PreferredBindings = appendDistinct(analysis.PreferredBindings, b, maxBindings)
			sample.Bindings = appendDistinct(sample.Bindings, b, -1)
		}
		if l := strings.TrimSpace(rec.Language); l != "" {
			analysis.CommonLanguages = appendDistinct(analysis.CommonLanguages, l, maxLanguages)
			sample.Languages = appendDistinct(sample.Languages, l, -1)
		}

		if rec.PurchasePrice > 0 {
			priceSum += rec.PurchasePrice
			priceCount++
		}
		if strings.Contains(strings.ToLower(rec.Edition), "first") {
			analysis.HasFirstEditions = true
		}

		if t := strings.TrimSpace(rec.Title); t != "" {
			sample.Titles = appendDistinct(sample.Titles, t, maxSampleTitles)
		}
		for _, name := range splitAuthors(rec.Authors) {
			sample.Authors = appendDistinct(sample.Authors, name, maxSampleAuthors)
		}
		if p := strings.TrimSpace(rec.Publisher); p != "" {
			sample.Publishers = appendDistinct(sample.Publishers, p, maxSamplePublishers)
		}
		if y := strings.TrimSpace(rec.Year); y != "" {
			sample.Years = appendDistinct(sample.Years, y, maxSampleYears)
		}
	}

	analysis.TopAuthors = authors.top(maxTopAuthors)
	analysis.TopPublishers = publishers.top(maxTopPublishers)
	if priceCount > 0 {
		analysis.AvgPrice = priceSum / float64(priceCount)
	}

	return analysis, sample, nil
}

// splitAuthors splits a comma-joined author string into distinct trimmed
// names. Each distinct name counts once per record.
func splitAuthors(joined string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(joined, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// decadeBucket maps a year string to its decade label, e.g. "1995" -> "1990s".
// Non-numeric years are simply skipped.
func decadeBucket(year string) (string, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y <= 0 {
		return "", false
	}
	return strconv.Itoa(y/10*10) + "s", true
}

// appendDistinct appends value to values if not already present, bounded by
// max (max < 0 means unbounded).
func appendDistinct(values []string, value string, max int) []string {
	if max >= 0 && len(values) >= max {
		return values
	}
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
