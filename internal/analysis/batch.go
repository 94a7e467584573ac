package analysis

import (
	"context"
	"sync"

	"github.com/quantmind-br/locrank/internal/core"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one file in a batch; each file fails on its own
type BatchItem struct {
	Path    string
	Outcome *Outcome
	Err     error
}

// AnalyzeFiles analyses paths with at most workers in flight. Results keep the
// order of paths. onDone, when set, is called once per finished file.
func (s *Service) AnalyzeFiles(ctx context.Context, paths []string, opts core.Options, noCache bool, workers int, onDone func(BatchItem)) []BatchItem {
	items := make([]BatchItem, len(paths))
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			item := BatchItem{Path: path}

			if err := gctx.Err(); err != nil {
				item.Err = err
			} else {
				item.Outcome, item.Err = s.AnalyzeFile(gctx, path, opts, noCache)
			}

			if item.Err != nil {
				s.Log.Warn().Err(item.Err).Str("path", path).Msg("batch item failed")
			}

			items[i] = item
			if onDone != nil {
				mu.Lock()
				onDone(item)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return items
}

// Summary counts the outcomes of a batch
type Summary struct {
	Files    int `json:"files"`
	Analysed int `json:"analysed"`
	Cached   int `json:"cached"`
	Failed   int `json:"failed"`
	Elements int `json:"elements"`
}

// Summarize counts a batch's outcomes
func Summarize(items []BatchItem) Summary {
	sum := Summary{Files: len(items)}
	for _, item := range items {
		switch {
		case item.Err != nil:
			sum.Failed++
		case item.Outcome.Cached:
			sum.Cached++
			sum.Elements += item.Outcome.Analysis.ElementCount
		default:
			sum.Analysed++
			sum.Elements += item.Outcome.Analysis.ElementCount
		}
	}
	return sum
}
