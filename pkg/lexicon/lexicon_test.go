package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestIsActionVerb(t *testing.T) {
	lex := Default()

	assert.True(t, lex.IsActionVerb("managed"))
	assert.True(t, lex.IsActionVerb("spearheaded"))
	assert.False(t, lex.IsActionVerb("Managed"), "lookup is exact, callers lower-case")
	assert.False(t, lex.IsActionVerb("manage"), "no stemming")
	assert.False(t, lex.IsActionVerb("responsible"))
}

func TestActionVerbsSorted(t *testing.T) {
	verbs := Default().ActionVerbs()

	assert.Len(t, verbs, len(actionVerbs))
	assert.IsNonDecreasing(t, verbs)
}

func TestIsQuantified(t *testing.T) {
	tests := []struct {
		sentence string
		want     bool
	}{
		{"Increased sales by 25%", true},
		{"Cut costs by 1.5 million", true},
		{"Saved 10 hours per week", true},
		{"Managed 12 employees", true},
		{"Grew ARR to 300k", true},
		{"Delivered 40 percent faster builds", true},
		{"Raised $ 5 dollars", true},
		{"Led 3 PROJECTS", true},
		{"Worked on the team", false},
		{"Shipped version 2 of the app", false},
	}

	lex := Default()
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.IsQuantified(tt.sentence))
		})
	}
}

func TestSentences(t *testing.T) {
	lex := Default()

	assert.Equal(t, []string{"One", "Two", "Three"}, lex.Sentences("One. Two!! Three?"))
	assert.Empty(t, lex.Sentences(" ... "))
	assert.Empty(t, lex.Sentences(""))
}

func TestBullets(t *testing.T) {
	lex := Default()

	got := lex.Bullets("Led the team. Built a tool\n- Shipped it! Done? ok\n\n")
	assert.Equal(t, []string{"Led the team", "Built a tool", "- Shipped it", "Done", "ok"}, got)

	// A terminator without a trailing space does not split.
	assert.Equal(t, []string{"v1.2 released."}, lex.Bullets("v1.2 released."))
}

func TestLeadingWord(t *testing.T) {
	lex := Default()

	assert.Equal(t, "managed", lex.LeadingWord("Managed a team"))
	assert.Equal(t, "led", lex.LeadingWord("Led, then shipped"))
	assert.Equal(t, "", lex.LeadingWord("- Built things"))
	assert.Equal(t, "built", lex.LeadingWord("•Built things"))
	assert.Equal(t, "managed", lex.LeadingWord("Managed\u00a0teams"))
	assert.Equal(t, "led", lex.LeadingWord("Led\u2003the team"))
}

func TestKeywords(t *testing.T) {
	lex := Default()

	got := lex.Keywords("Python developer with Python and SQL, go-getter")
	assert.Equal(t, []string{"python", "developer", "with", "getter"}, got)

	set := lex.KeywordSet("Python PYTHON python")
	assert.Len(t, set, 1)
	assert.Contains(t, set, "python")

	assert.NotNil(t, lex.Keywords(""))
}

func TestDates(t *testing.T) {
	lex := Default()

	for _, ok := range []string{"01/2020", "1/2020", "2020", "Present", "CURRENT"} {
		assert.True(t, lex.IsCanonicalDate(ok), ok)
	}
	for _, bad := range []string{"Jan 2020", "2020-01", "01/20", "now", "20201"} {
		assert.False(t, lex.IsCanonicalDate(bad), bad)
	}

	assert.True(t, lex.IsOpenEnded("present"))
	assert.False(t, lex.IsOpenEnded("2020"))
}

func TestHasExcessWhitespace(t *testing.T) {
	lex := Default()

	assert.True(t, lex.HasExcessWhitespace("a    b"))
	assert.False(t, lex.HasExcessWhitespace("a   b"))
	assert.True(t, lex.HasExcessWhitespace("a \u00a0\u00a0 b"))
}
