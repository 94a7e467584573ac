package heuristics

import (
	"fmt"
	"sort"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Ranker scores candidates and keeps the best ones in order
type Ranker struct {
	Logger *zerolog.Logger
	Scorer Scorer
}

// NewRanker creates a ranker around a scorer; nil selects the DefaultScorer
func NewRanker(logger *zerolog.Logger, scorer Scorer) *Ranker {
	if scorer == nil {
		scorer = NewScorer(logger)
	}
	return &Ranker{
		Logger: logger,
		Scorer: scorer,
	}
}

// Rank scores every candidate, sorts by total score descending (ties keep generation
// order), keeps the top MaxStrategies and numbers them from 1. A panic while scoring or
// sorting degrades to Fallback instead of failing.
func (r *Ranker) Rank(candidates []core.LocatorCandidate, el *html.Node, doc *dom.Document) (ranked []core.ScoredStrategy) {
	if len(candidates) == 0 {
		return []core.ScoredStrategy{}
	}

	defer func() {
		if rec := recover(); rec != nil {
			if r.Logger != nil {
				r.Logger.Warn().
					Err(fmt.Errorf("panic: %v", rec)).
					Int("candidates", len(candidates)).
					Msg("ranking failed, using unranked fallback")
			}
			ranked = Fallback(candidates)
		}
	}()

	scored := make([]core.ScoredStrategy, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, r.Scorer.Score(c, el, doc))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	if len(scored) > MaxStrategies {
		scored = scored[:MaxStrategies]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	if r.Logger != nil {
		r.Logger.Debug().
			Int("candidates", len(candidates)).
			Int("ranked", len(scored)).
			Msg("ranked locator strategies")
	}

	return scored
}

// Fallback keeps the first MaxStrategies candidates in generation order with neutral scores
func Fallback(candidates []core.LocatorCandidate) []core.ScoredStrategy {
	n := len(candidates)
	if n > MaxStrategies {
		n = MaxStrategies
	}

	out := make([]core.ScoredStrategy, n)
	for i := 0; i < n; i++ {
		out[i] = core.ScoredStrategy{
			LocatorCandidate: candidates[i],
			Scores: core.Scores{
				Uniqueness:    NeutralScore,
				Stability:     NeutralScore,
				Readability:   NeutralScore,
				Performance:   NeutralScore,
				Accessibility: NeutralScore,
			},
			TotalScore: NeutralScore,
			Rank:       i + 1,
		}
	}
	return out
}
