package feedback

// Dimension is one weighted axis of the response-quality rubric.
type Dimension struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Rubric lists the evaluation dimensions. Weights sum to 100.
var Rubric = []Dimension{
	{Name: "Correctness / Accuracy", Weight: 20},
	{Name: "Relevance / On-topic", Weight: 15},
	{Name: "Completeness", Weight: 15},
	{Name: "Clarity / Understandability", Weight: 10},
	{Name: "Tone / Empathy / Voice Fit", Weight: 10},
	{Name: "Efficiency / Brevity", Weight: 5},
	{Name: "Compliance / Scope Adherence", Weight: 10},
	{Name: "Context / Memory Handling", Weight: 5},
	{Name: "Actionability / Next Steps Provided", Weight: 5},
	{Name: "Escalation Appropriateness", Weight: 5},
}

// MinScore and MaxScore bound a single dimension rating.
const (
	MinScore = 1
	MaxScore = 5
)

// WeightedScore computes the weight-averaged rating across all scored
// dimensions, on the same 1-5 scale. Unscored dimensions are ignored.
func WeightedScore(scores map[string]int) float64 {
	total := 0
	weightSum := 0
	for _, dim := range Rubric {
		score, ok := scores[dim.Name]
		if !ok {
			continue
		}
		total += score * dim.Weight
		weightSum += dim.Weight
	}
	if weightSum == 0 {
		return 0
	}
	return float64(total) / float64(weightSum)
}
