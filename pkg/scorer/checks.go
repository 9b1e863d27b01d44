package scorer

import (
	"math"
	"strings"

	"github.com/nikogura/ats-scorer/pkg/lexicon"
	"github.com/nikogura/ats-scorer/pkg/resume"
)

// check computes one category sub-score in [0, 100]. Checks never fail: missing
// or empty input maps to a defined score.
type check func(lex *lexicon.Lexicon, data resume.Data, jobDescription string) (score int)

//nolint:gochecknoglobals // Scoring configuration constants
var checks = [...]check{
	ContactInfo:            scoreContact,
	QuantifiedAchievements: scoreQuantified,
	ActionVerbs:            scoreActionVerbs,
	Keywords:               scoreKeywords,
	Formatting:             scoreFormatting,
}

func scoreContact(_ *lexicon.Lexicon, data resume.Data, _ string) (score int) {
	contact := data.Contact
	if contact == nil {
		return score
	}

	if contact.Name != "" {
		score += 25
	}
	if strings.Contains(contact.Email, "@") {
		score += 25
	}
	if contact.Phone != "" {
		score += 25
	}
	if contact.Location != "" {
		score += 25
	}

	return score
}

func scoreQuantified(lex *lexicon.Lexicon, data resume.Data, _ string) (score int) {
	total := 0
	quantified := 0

	for _, text := range narrativeTexts(data) {
		for _, sentence := range lex.Sentences(text) {
			total++
			if lex.IsQuantified(sentence) {
				quantified++
			}
		}
	}

	score = percentage(quantified, total)
	return score
}

func scoreActionVerbs(lex *lexicon.Lexicon, data resume.Data, _ string) (score int) {
	total := 0
	strong := 0

	for _, text := range narrativeTexts(data) {
		for _, bullet := range lex.Bullets(text) {
			total++
			if lex.IsActionVerb(lex.LeadingWord(bullet)) {
				strong++
			}
		}
	}

	score = percentage(strong, total)
	return score
}

func scoreKeywords(lex *lexicon.Lexicon, data resume.Data, jobDescription string) (score int) {
	if jobDescription == "" {
		return score
	}

	wanted := lex.Keywords(jobDescription)
	present := lex.KeywordSet(keywordText(data))

	matched := 0
	for _, keyword := range wanted {
		if _, ok := present[keyword]; ok {
			matched++
		}
	}

	score = percentage(matched, len(wanted))
	return score
}

// narrativeTexts returns the free text that holds achievements: every experience
// description, then the summary.
func narrativeTexts(data resume.Data) (texts []string) {
	texts = make([]string, 0, len(data.Experience)+1)
	for _, exp := range data.Experience {
		if exp.Description != "" {
			texts = append(texts, exp.Description)
		}
	}
	if data.Summary != "" {
		texts = append(texts, data.Summary)
	}
	return texts
}

// keywordText flattens the resume fields an ATS indexes for keyword search.
func keywordText(data resume.Data) (text string) {
	var sb strings.Builder

	if data.Contact != nil {
		sb.WriteString(data.Contact.Name + " " + data.Contact.Email + " " + data.Contact.Phone + " ")
	}
	sb.WriteString(data.Summary + " ")

	for _, exp := range data.Experience {
		sb.WriteString(exp.Company + " " + exp.Position + " " + exp.Description + " ")
	}

	for _, edu := range data.Education {
		sb.WriteString(edu.Institution + " " + edu.Degree + " ")
	}

	sb.WriteString(strings.Join(data.Skills, " "))

	text = sb.String()
	return text
}

// percentage returns part/whole as a rounded percentage capped at 100. An empty
// whole scores 0.
func percentage(part, whole int) (pct int) {
	if whole == 0 {
		return pct
	}

	pct = roundHalfUp(float64(part) / float64(whole) * 100)
	if pct > 100 {
		pct = 100
	}

	return pct
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(value float64) (rounded int) {
	rounded = int(math.Floor(value + 0.5))
	return rounded
}
