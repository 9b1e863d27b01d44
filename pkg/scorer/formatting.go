package scorer

import (
	"strings"

	"github.com/nikogura/ats-scorer/pkg/lexicon"
	"github.com/nikogura/ats-scorer/pkg/resume"
)

// formattingRule reports whether the resume breaks one formatting convention.
type formattingRule func(lex *lexicon.Lexicon, data resume.Data) (violated bool)

//nolint:gochecknoglobals // Scoring configuration constants
var formattingRules = []formattingRule{
	inconsistentExperienceDates,
	inconsistentEducationDates,
	excessWhitespace,
	inconsistentBullets,
}

// scoreFormatting starts at 100 and deducts a fixed penalty per violated rule.
// Each rule deducts at most once regardless of how many entries break it.
func scoreFormatting(lex *lexicon.Lexicon, data resume.Data, _ string) (score int) {
	score = 100

	for _, rule := range formattingRules {
		if rule(lex, data) {
			score -= formattingPenalty
		}
	}

	if score < 0 {
		score = 0
	}

	return score
}

func inconsistentExperienceDates(lex *lexicon.Lexicon, data resume.Data) (violated bool) {
	for _, exp := range data.Experience {
		if exp.StartDate != "" && !lex.IsCanonicalDate(exp.StartDate) {
			violated = true
			return violated
		}
		if exp.EndDate != "" && !lex.IsCanonicalDate(exp.EndDate) && !lex.IsOpenEnded(exp.EndDate) {
			violated = true
			return violated
		}
	}
	return violated
}

func inconsistentEducationDates(lex *lexicon.Lexicon, data resume.Data) (violated bool) {
	for _, edu := range data.Education {
		if edu.StartDate != "" && !lex.IsCanonicalDate(edu.StartDate) {
			violated = true
			return violated
		}
		if edu.EndDate != "" && !lex.IsCanonicalDate(edu.EndDate) {
			violated = true
			return violated
		}
	}
	return violated
}

func excessWhitespace(lex *lexicon.Lexicon, data resume.Data) (violated bool) {
	violated = lex.HasExcessWhitespace(data.Serialize())
	return violated
}

// inconsistentBullets flags a multi-line description whose lines open with more
// than two distinct characters.
func inconsistentBullets(_ *lexicon.Lexicon, data resume.Data) (violated bool) {
	for _, exp := range data.Experience {
		lines := strings.Split(exp.Description, "\n")
		if len(lines) < 2 {
			continue
		}

		markers := make(map[rune]struct{})
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			for _, first := range trimmed {
				markers[first] = struct{}{}
				break
			}
		}

		if len(markers) > 2 {
			violated = true
			return violated
		}
	}
	return violated
}
