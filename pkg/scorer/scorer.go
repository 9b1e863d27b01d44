// Package scorer implements the ATS scoring engine: five independent category
// checks, weighted aggregation and suggestion generation.
package scorer

import (
	"github.com/nikogura/ats-scorer/pkg/lexicon"
	"github.com/nikogura/ats-scorer/pkg/resume"
)

// Rating bands for the composite score.
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingNeedsWork = "needs work"
)

// Result is the outcome of scoring one resume. It is built fresh per call and
// owned by the caller.
type Result struct {
	CompositeScore  int              `json:"composite_score"`
	CategoryScores  map[string]int   `json:"category_scores"`
	Categories      []CategoryResult `json:"categories"`
	Issues          []string         `json:"issues"`
	Suggestions     []string         `json:"suggestions"`
	MissingKeywords []string         `json:"missing_keywords"`
	Rating          string           `json:"rating"`
}

// Score returns the sub-score for a category, or 0 if absent.
func (r Result) Score(category Category) (score int) {
	score = r.CategoryScores[category.String()]
	return score
}

// Verdict is a one-line human summary of the rating.
func (r Result) Verdict() (verdict string) {
	switch r.Rating {
	case RatingExcellent:
		verdict = "Excellent! Your resume is well-optimized."
	case RatingGood:
		verdict = "Good, but there's room for improvement."
	default:
		verdict = "Needs work. Follow the suggestions below."
	}
	return verdict
}

// Scorer runs the category checks. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	lex *lexicon.Lexicon
}

// NewScorer creates a scorer backed by the shared lexicon.
func NewScorer() (scorer *Scorer) {
	scorer = NewScorerWithLexicon(lexicon.Default())
	return scorer
}

// NewScorerWithLexicon creates a scorer backed by the given lexicon.
func NewScorerWithLexicon(lex *lexicon.Lexicon) (scorer *Scorer) {
	scorer = &Scorer{lex: lex}
	return scorer
}

// Score evaluates a resume against a job description. An empty job description
// scores 0 on keywords. Score never fails on well-formed data; the error return is
// reserved for input rejected before scoring (see ScoreJSON).
func (s *Scorer) Score(data resume.Data, jobDescription string) (result Result, err error) {
	categories := make([]CategoryResult, 0, len(checks))
	for _, category := range AllCategories() {
		score := checks[category](s.lex, data, jobDescription)
		categories = append(categories, newCategoryResult(category, score))
	}

	composite, issues := Aggregate(categories)
	suggestions, missing := GenerateSuggestions(s.lex, categories, data, jobDescription)

	categoryScores := make(map[string]int, len(categories))
	for _, c := range categories {
		categoryScores[c.Key] = c.Score
	}

	result = Result{
		CompositeScore:  composite,
		CategoryScores:  categoryScores,
		Categories:      categories,
		Issues:          issues,
		Suggestions:     suggestions,
		MissingKeywords: missing,
		Rating:          rate(composite),
	}

	return result, err
}

// ScoreJSON decodes resume JSON and scores it. Shape errors are returned as
// *resume.ValidationError and nothing is scored.
func (s *Scorer) ScoreJSON(raw []byte, jobDescription string) (result Result, err error) {
	var data resume.Data
	data, err = resume.Decode(raw)
	if err != nil {
		return result, err
	}

	result, err = s.Score(data, jobDescription)
	return result, err
}

// Lexicon returns the lexicon the scorer uses.
func (s *Scorer) Lexicon() (lex *lexicon.Lexicon) {
	lex = s.lex
	return lex
}

func rate(composite int) (rating string) {
	switch {
	case composite >= 80:
		rating = RatingExcellent
	case composite >= 60:
		rating = RatingGood
	default:
		rating = RatingNeedsWork
	}
	return rating
}
