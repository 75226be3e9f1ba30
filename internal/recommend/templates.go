package recommend

// SystemPrompt is the fixed system instruction sent with every request. The
// strict output contract lives here; the user prompt carries the data.
const SystemPrompt = `You are a rare and used book specialist helping a collector expand their library.
You respond with ONLY a JSON array and nothing else: no prose, no markdown, no code fences.
The array contains exactly 3 objects, each with these string fields:
"isbn13", "title", "author", "publisher", "year", "description", "estimated_value", "availability".
"estimated_value" is a display string such as "$25-40". "availability" is a short note such as "Common in used bookstores".
Only recommend real books with valid ISBN-13 identifiers.`

// collectionPromptTemplate is filled from a CollectionAnalysis plus sample
// titles. Args: total, authors, publishers, eras, languages, titles.
const collectionPromptTemplate = `Recommend exactly 3 books for a collector based on their collection profile.
Do not recommend books they already own.

Collection profile:
- Total books owned: %d
- Favorite authors: %s
- Frequent publishers: %s
- Common eras: %s
- Languages: %s
- Sample titles from the shelf: %s

Return ONLY the JSON array described in your instructions.`

// tastePromptTemplate is filled from the user's own taste description plus
// filters. Args: taste, year range, publisher, language, binding, first-edition.
const tastePromptTemplate = `Recommend exactly 3 books matching this collector's stated taste.

Taste description: %s

Constraints (use "Any" entries freely):
- Year range: %s
- Publisher: %s
- Language: %s
- Binding: %s
- First editions only: %s

Return ONLY the JSON array described in your instructions.`
