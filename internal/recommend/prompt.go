package recommend

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"shelfmate/backend/internal/model"
)

const maxPromptTitles = 3

// PromptBuilder turns a request into the instruction strings for the model.
// Pure: no I/O, no state.
type PromptBuilder struct{}

// NewPromptBuilder creates a prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSystemPrompt returns the fixed system instruction.
func (b *PromptBuilder) BuildSystemPrompt() string {
	return SystemPrompt
}

// BuildCollectionPrompt embeds the taste profile and up to three sample
// titles into the collection-mode instruction.
func (b *PromptBuilder) BuildCollectionPrompt(analysis CollectionAnalysis, sample DetailedSample) string {
	titles := sample.Titles
	if len(titles) > maxPromptTitles {
		titles = titles[:maxPromptTitles]
	}

	return fmt.Sprintf(collectionPromptTemplate,
		analysis.TotalBooks,
		joinOrNone(firstN(analysis.TopAuthors, 3)),
		joinOrNone(firstN(analysis.TopPublishers, 2)),
		joinOrNone(analysis.CommonYearRanges),
		joinOrNone(analysis.CommonLanguages),
		joinOrNone(titles),
	)
}

// BuildTastePrompt embeds the raw free-text taste plus each filter, with
// absent filters defaulted to "Any". The taste text is NFC-normalized so
// lookalike code points cannot smuggle divergent instructions.
func (b *PromptBuilder) BuildTastePrompt(taste string, filters model.TasteFilters) string {
	taste = norm.NFC.String(strings.TrimSpace(taste))

	firstEdition := "Any"
	if filters.FirstEditionOnly {
		firstEdition = "Yes"
	}

	return fmt.Sprintf(tastePromptTemplate,
		taste,
		orAny(filters.YearRange),
		orAny(filters.Publisher),
		orAny(filters.Language),
		orAny(filters.Binding),
		firstEdition,
	)
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none recorded"
	}
	return strings.Join(values, ", ")
}

func orAny(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Any"
	}
	return value
}
