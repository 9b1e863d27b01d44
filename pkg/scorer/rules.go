package scorer

// Category identifies one of the independent ATS checks.
type Category int

// Categories in reporting order. Issues and suggestions follow this order.
const (
	ContactInfo Category = iota
	QuantifiedAchievements
	ActionVerbs
	Keywords
	Formatting
)

// Rule describes how a category is weighted and reported.
type Rule struct {
	Key        string
	Name       string
	Weight     int // Share of the composite score; all weights sum to 100
	Issue      string
	Suggestion string
}

//nolint:gochecknoglobals // Scoring configuration constants
var scoringRules = [...]Rule{
	ContactInfo: {
		Key:        "contactInfo",
		Name:       "Contact Information",
		Weight:     10,
		Issue:      "Missing complete contact information (name, email, phone)",
		Suggestion: "Add complete contact information including name, email, phone number, and location",
	},
	QuantifiedAchievements: {
		Key:        "quantifiedAchievements",
		Name:       "Quantified Achievements",
		Weight:     25,
		Issue:      "Lack of quantified achievements with numbers and metrics",
		Suggestion: "Quantify your achievements with specific numbers, percentages, and metrics (e.g., 'Increased sales by 25%' rather than 'Increased sales')",
	},
	ActionVerbs: {
		Key:        "actionVerbs",
		Name:       "Action Verbs",
		Weight:     15,
		Issue:      "Insufficient use of strong action verbs at the beginning of bullet points",
		Suggestion: "Start bullet points with strong action verbs (e.g., 'Managed', 'Developed', 'Implemented') rather than weak verbs like 'Responsible for'",
	},
	Keywords: {
		Key:        "keywords",
		Name:       "Keywords Match",
		Weight:     30,
		Issue:      "Missing important keywords from the job description",
		Suggestion: "Incorporate more keywords from the job description throughout your resume",
	},
	Formatting: {
		Key:        "formatting",
		Name:       "Formatting",
		Weight:     20,
		Issue:      "Inconsistent formatting or poor structure that may confuse ATS systems",
		Suggestion: "Ensure consistent formatting throughout your resume (dates, bullet points, spacing)",
	},
}

// missingKeywordsPrefix introduces the named missing keywords suggestion.
const missingKeywordsPrefix = "Add these keywords from the job description: "

// maxMissingKeywords caps how many missing keywords a suggestion names.
const maxMissingKeywords = 3

// formattingPenalty is deducted once per failed formatting rule.
const formattingPenalty = 10

// AllCategories returns every category in reporting order.
func AllCategories() (categories []Category) {
	categories = []Category{ContactInfo, QuantifiedAchievements, ActionVerbs, Keywords, Formatting}
	return categories
}

// Rule returns the weighting and wording for the category.
func (c Category) Rule() (rule Rule) {
	rule = scoringRules[c]
	return rule
}

// String returns the category key used in serialized results.
func (c Category) String() string {
	return scoringRules[c].Key
}
