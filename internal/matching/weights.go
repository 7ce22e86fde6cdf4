package matching

// Weights blends the sub-scores into the overall score. They are product
// constants: changing them changes ranking behavior.
type Weights struct {
	Weighted   float64 `json:"weighted" mapstructure:"weighted"`
	F1         float64 `json:"f1" mapstructure:"f1"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	Category   float64 `json:"category" mapstructure:"category"`
}

// DefaultWeights returns the standard blend: 0.4 weighted, 0.3 F1, 0.2 experience, 0.1 category.
func DefaultWeights() Weights {
	return Weights{
		Weighted:   0.4,
		F1:         0.3,
		Experience: 0.2,
		Category:   0.1,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Weighted + w.F1 + w.Experience + w.Category
}

// Gap priority and comparison requirement cut-offs on job-side confidence.
const (
	highPriorityConfidence = 0.8
	requiredConfidence     = 0.7
)
