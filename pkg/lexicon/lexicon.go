// Package lexicon holds the static reference data used by the ATS scorer:
// the recognized action verbs and the compiled text patterns.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Lexicon is immutable after construction and safe for concurrent use.
type Lexicon struct {
	actionVerbs map[string]struct{}

	quantified    *regexp.Regexp
	sentenceSplit *regexp.Regexp
	bulletSplit   *regexp.Regexp
	whitespace    *regexp.Regexp
	nonWord       *regexp.Regexp
	keyword       *regexp.Regexp
	date          *regexp.Regexp
	openEnded     *regexp.Regexp
	excessSpace   *regexp.Regexp
}

//nolint:gochecknoglobals // Built once, read-only afterwards
var defaultLexicon = sync.OnceValue(newLexicon)

// Default returns the shared lexicon. Patterns are compiled on first use only.
func Default() (lex *Lexicon) {
	lex = defaultLexicon()
	return lex
}

func newLexicon() (lex *Lexicon) {
	lex = &Lexicon{
		actionVerbs:   make(map[string]struct{}, len(actionVerbs)),
		quantified:    regexp.MustCompile(QuantifiedPattern),
		sentenceSplit: regexp.MustCompile(`[.!?]+`),
		bulletSplit:   regexp.MustCompile(`\n|\. |\? |! `),
		whitespace:    regexp.MustCompile(space + `+`),
		nonWord:       regexp.MustCompile(`\W`),
		keyword:       regexp.MustCompile(`\b\w{4,}\b`),
		date:          regexp.MustCompile(`(?i)^(?:\d{1,2}/\d{4}|\d{4}|present|current)$`),
		openEnded:     regexp.MustCompile(`(?i)^(?:present|current)$`),
		excessSpace:   regexp.MustCompile(space + `{4,}`),
	}

	for _, verb := range actionVerbs {
		lex.actionVerbs[verb] = struct{}{}
	}

	return lex
}

// space matches one whitespace character, Unicode separators included. RE2's \s
// covers ASCII only.
const space = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

// QuantifiedPattern matches a number followed by a unit, currency or business metric.
const QuantifiedPattern = `(?i)\d+(?:\.\d+)?\s*(?:%|percent|dollars?|\$|k|million|billion|hours?|days?|weeks?|months?|years?|employees?|projects?|clients?|sales?|revenue|growth|increase|decrease|improvement)`

// IsActionVerb reports whether word is a recognized action verb. The match is exact;
// callers normalize case and punctuation first.
func (l *Lexicon) IsActionVerb(word string) (ok bool) {
	_, ok = l.actionVerbs[word]
	return ok
}

// ActionVerbs returns the verb list in alphabetical order.
func (l *Lexicon) ActionVerbs() (verbs []string) {
	verbs = make([]string, 0, len(l.actionVerbs))
	for verb := range l.actionVerbs {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}

// IsQuantified reports whether the sentence carries a quantified achievement.
func (l *Lexicon) IsQuantified(sentence string) (ok bool) {
	ok = l.quantified.MatchString(sentence)
	return ok
}

// Sentences splits text on runs of sentence terminators and drops blank segments.
func (l *Lexicon) Sentences(text string) (sentences []string) {
	sentences = nonBlank(l.sentenceSplit.Split(text, -1))
	return sentences
}

// Bullets splits text on newlines and on terminators followed by a space.
// Segments are trimmed and blank ones dropped.
func (l *Lexicon) Bullets(text string) (bullets []string) {
	bullets = nonBlank(l.bulletSplit.Split(text, -1))
	return bullets
}

// LeadingWord returns the first whitespace-delimited token of a trimmed bullet,
// lower-cased with every non-word character removed.
func (l *Lexicon) LeadingWord(bullet string) (word string) {
	fields := l.whitespace.Split(bullet, 2)
	if len(fields) == 0 {
		return word
	}
	word = l.nonWord.ReplaceAllString(strings.ToLower(fields[0]), "")
	return word
}

// Keywords returns the distinct lower-cased words of four or more characters,
// in order of first appearance.
func (l *Lexicon) Keywords(text string) (keywords []string) {
	keywords = []string{}
	seen := make(map[string]struct{})

	for _, match := range l.keyword.FindAllString(text, -1) {
		word := strings.ToLower(match)
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	return keywords
}

// KeywordSet is Keywords as a set.
func (l *Lexicon) KeywordSet(text string) (set map[string]struct{}) {
	set = make(map[string]struct{})
	for _, match := range l.keyword.FindAllString(text, -1) {
		set[strings.ToLower(match)] = struct{}{}
	}
	return set
}

// IsCanonicalDate reports whether value is MM/YYYY, a bare year, or present/current.
func (l *Lexicon) IsCanonicalDate(value string) (ok bool) {
	ok = l.date.MatchString(value)
	return ok
}

// IsOpenEnded reports whether value is the literal present or current.
func (l *Lexicon) IsOpenEnded(value string) (ok bool) {
	ok = l.openEnded.MatchString(value)
	return ok
}

// HasExcessWhitespace reports a run of four or more whitespace characters.
func (l *Lexicon) HasExcessWhitespace(text string) (ok bool) {
	ok = l.excessSpace.MatchString(text)
	return ok
}

func nonBlank(segments []string) (kept []string) {
	kept = make([]string, 0, len(segments))
	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept
}
