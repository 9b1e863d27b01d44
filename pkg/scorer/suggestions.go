package scorer

import (
	"strings"

	"github.com/nikogura/ats-scorer/pkg/lexicon"
	"github.com/nikogura/ats-scorer/pkg/resume"
)

// GenerateSuggestions produces one improvement suggestion for every category below
// 100, in the order given. The keywords suggestion names up to three job
// description keywords that never appear in the serialized resume; the named
// keywords are also returned.
func GenerateSuggestions(lex *lexicon.Lexicon, results []CategoryResult, data resume.Data, jobDescription string) (suggestions []string, missing []string) {
	suggestions = []string{}
	missing = []string{}

	for _, result := range results {
		if result.Score >= 100 {
			continue
		}

		suggestion := result.Category.Rule().Suggestion
		if result.Category == Keywords {
			missing = MissingKeywords(lex, data, jobDescription, maxMissingKeywords)
			if len(missing) > 0 {
				suggestion = missingKeywordsPrefix + strings.Join(missing, ", ")
			}
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, missing
}

// MissingKeywords returns up to limit job description keywords, in order of first
// appearance, that do not occur anywhere in the lower-cased serialized resume.
//
// This is a substring test, unlike the whole-word test the keyword score uses, so
// a keyword can count as unmatched for scoring yet not be reported here.
func MissingKeywords(lex *lexicon.Lexicon, data resume.Data, jobDescription string, limit int) (missing []string) {
	missing = []string{}
	if limit <= 0 {
		return missing
	}

	haystack := strings.ToLower(data.Serialize())
	for _, keyword := range lex.Keywords(jobDescription) {
		if strings.Contains(haystack, keyword) {
			continue
		}
		missing = append(missing, keyword)
		if len(missing) == limit {
			break
		}
	}

	return missing
}
