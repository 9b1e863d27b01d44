package scorer

// CategoryResult is the outcome of one category check.
type CategoryResult struct {
	Category Category `json:"-"`
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Weight   int      `json:"weight"`
	Score    int      `json:"score"`
}

func newCategoryResult(category Category, score int) (result CategoryResult) {
	rule := category.Rule()
	result = CategoryResult{
		Category: category,
		Key:      rule.Key,
		Name:     rule.Name,
		Weight:   rule.Weight,
		Score:    score,
	}
	return result
}

// Aggregate combines category results into the weighted composite score and
// lists one issue per category scoring below 100, in the order given.
func Aggregate(results []CategoryResult) (composite int, issues []string) {
	issues = []string{}
	total := 0.0

	for _, result := range results {
		total += float64(result.Score*result.Weight) / 100
		if result.Score < 100 {
			issues = append(issues, result.Category.Rule().Issue)
		}
	}

	composite = roundHalfUp(total)
	if composite < 0 {
		composite = 0
	}
	if composite > 100 {
		composite = 100
	}

	return composite, issues
}
