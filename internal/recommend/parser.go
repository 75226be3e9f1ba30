package recommend

import (
	"encoding/json"
	"strings"

	"shelfmate/backend/internal/model"
)

// rawRecommendation mirrors the schema the model is instructed to emit,
// accepting the legacy "isbn" key alongside "isbn13".
type rawRecommendation struct {
	ISBN13         string `json:"isbn13"`
	ISBN           string `json:"isbn"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Publisher      string `json:"publisher"`
	Year           string `json:"year"`
	Description    string `json:"description"`
	EstimatedValue string `json:"estimated_value"`
	Availability   string `json:"availability"`
	SourcesUsed    string `json:"sources_used"`
}

// ParseRecommendations extracts and validates the JSON array from raw model
// output, tolerating markdown fences and surrounding prose. Items missing an
// ISBN-13, title or author are dropped without failing the batch; a parse
// RecoverableError is returned only when nothing usable survives.
func ParseRecommendations(raw string) ([]model.Recommendation, error) {
	candidate, ok := extractArray(raw)
	if !ok {
		return nil, parseFailure("no JSON array in response", nil)
	}

	var items []rawRecommendation
	if err := json.Unmarshal([]byte(candidate), &items); err != nil {
		return nil, parseFailure("invalid JSON array", err)
	}
	if len(items) == 0 {
		return nil, parseFailure("empty recommendation array", nil)
	}

	recs := make([]model.Recommendation, 0, len(items))
	for _, item := range items {
		isbn13 := strings.TrimSpace(item.ISBN13)
		if isbn13 == "" {
			isbn13 = strings.TrimSpace(item.ISBN)
		}
		if isbn13 == "" ||
			strings.TrimSpace(item.Title) == "" ||
			strings.TrimSpace(item.Author) == "" {
			continue
		}

		rec := model.Recommendation{
			ISBN13:         isbn13,
			Title:          strings.TrimSpace(item.Title),
			Author:         strings.TrimSpace(item.Author),
			Publisher:      item.Publisher,
			Year:           item.Year,
			Description:    item.Description,
			EstimatedValue: item.EstimatedValue,
			Availability:   item.Availability,
			SourcesUsed:    item.SourcesUsed,
		}
		if rec.SourcesUsed == "" {
			rec.SourcesUsed = marketplaceURL(isbn13)
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, parseFailure("no valid recommendations after filtering", nil)
	}
	return recs, nil
}

// extractArray strips code fences and returns the first-'['-to-last-']' span
// of the text, or the whole trimmed text when it is already bracket-delimited.
func extractArray(raw string) (string, bool) {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		return cleaned[start : end+1], true
	}
	if strings.HasPrefix(cleaned, "[") && strings.HasSuffix(cleaned, "]") {
		return cleaned, true
	}
	return "", false
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
