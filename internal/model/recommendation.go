package model

// Request modes. ModeCollection derives recommendations from the user's
// stored books; ModeTaste from a free-text taste description plus filters.
const (
	ModeCollection = "collection"
	ModeTaste      = "taste"
)

// TasteFilters narrows a taste-mode request. Empty values mean "Any".
type TasteFilters struct {
	YearRange        string `json:"year_range,omitempty"`
	Publisher        string `json:"publisher,omitempty"`
	Language         string `json:"language,omitempty"`
	Binding          string `json:"binding,omitempty"`
	FirstEditionOnly bool   `json:"first_edition_only,omitempty"`
}

// RecommendationRequest is a single recommendation run as issued by the UI.
type RecommendationRequest struct {
	Mode    string       `json:"mode"`
	Taste   string       `json:"taste,omitempty"`
	Filters TasteFilters `json:"filters,omitempty"`
}

// Recommendation is one suggested book. ISBN13, Title and Author are
// guaranteed non-empty after validation.
type Recommendation struct {
	ISBN13         string `json:"isbn13" bson:"isbn13"`
	Title          string `json:"title" bson:"title"`
	Author         string `json:"author" bson:"author"`
	Publisher      string `json:"publisher,omitempty" bson:"publisher,omitempty"`
	Year           string `json:"year,omitempty" bson:"year,omitempty"`
	Description    string `json:"description,omitempty" bson:"description,omitempty"`
	EstimatedValue string `json:"estimated_value,omitempty" bson:"estimated_value,omitempty"`
	Availability   string `json:"availability,omitempty" bson:"availability,omitempty"`
	SourcesUsed    string `json:"sources_used,omitempty" bson:"sources_used,omitempty"`
}

// SearchSource is a citation-like pointer to a marketplace lookup supporting
// a recommendation. The index markers delimit a highlightable span within
// Content; they are carried through untouched.
type SearchSource struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

// RecommendationResult is what the UI receives. SearchEnabled is false when
// the recommendations were synthesized locally (unverified) rather than
// produced by the remote model.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	SearchSources   []SearchSource   `json:"search_sources"`
	SearchEnabled   bool             `json:"search_enabled"`
}
