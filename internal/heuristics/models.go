package heuristics

import (
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"golang.org/x/net/html"
)

const (
	// MaxStrategies caps how many ranked strategies are kept per element
	MaxStrategies = 5

	// NeutralScore replaces any sub-score that could not be computed
	NeutralScore = 0.5
)

// Weights are the per-factor multipliers of the total score. They sum to 1.
type Weights struct {
	Uniqueness    float64
	Stability     float64
	Readability   float64
	Performance   float64
	Accessibility float64
}

// DefaultWeights returns the standard weighting
func DefaultWeights() Weights {
	return Weights{
		Uniqueness:    0.25,
		Stability:     0.25,
		Readability:   0.20,
		Performance:   0.15,
		Accessibility: 0.15,
	}
}

// Scorer defines the interface for scoring locator candidates
type Scorer interface {
	// Score computes every sub-score and the weighted total for one candidate
	Score(c core.LocatorCandidate, el *html.Node, doc *dom.Document) core.ScoredStrategy
}
