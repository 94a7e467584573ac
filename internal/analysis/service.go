// Package analysis runs the locator engine over input documents and keeps the
// results in the analysis store.
package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/quantmind-br/locrank/internal/cache"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/quantmind-br/locrank/internal/fsops"
	"github.com/quantmind-br/locrank/internal/locator"
	"github.com/quantmind-br/locrank/internal/security"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Request is one document to analyse
type Request struct {
	Source  string
	Markup  string
	Options core.Options
	NoCache bool
}

// Outcome is the stored analysis for a request and whether it came from the cache
type Outcome struct {
	Analysis *db.Analysis
	Cached   bool
	Stored   bool
}

// Service holds the dependencies shared by every analysis
type Service struct {
	Fs     afero.Fs
	Cache  *cache.CacheManager
	Engine *locator.Engine
	Cfg    *config.Config
	Log    *zerolog.Logger
	now    func() time.Time
}

// New creates a Service reading from the OS filesystem and storing into store
func New(cfg *config.Config, log *zerolog.Logger, store cache.Store) *Service {
	return NewWithDeps(cfg, log, afero.NewOsFs(), store, locator.New(log))
}

// NewWithDeps creates a Service with injected dependencies
func NewWithDeps(cfg *config.Config, log *zerolog.Logger, fs afero.Fs, store cache.Store, engine *locator.Engine) *Service {
	return &Service{
		Fs:     fs,
		Cache:  cache.NewCacheManager(store, cfg.Cache.TTL, cfg.Cache.Enabled),
		Engine: engine,
		Cfg:    cfg,
		Log:    log,
		now:    time.Now,
	}
}

// Load reads markup from path, or from stdin when path is "-"
func (s *Service) Load(path string, stdin io.Reader) (string, error) {
	if err := security.ValidateInputPath(path); err != nil {
		return "", err
	}

	if path == security.StdinPath {
		return fsops.ReadHTMLFrom(stdin, s.Cfg.Analysis.MaxHTMLBytes)
	}
	return fsops.ReadHTML(s.Fs, path, s.Cfg.Analysis.MaxHTMLBytes)
}

// Analyze validates, parses and ranks one document, reusing a fresh stored
// result for identical input and options unless NoCache is set
func (s *Service) Analyze(ctx context.Context, req Request) (*Outcome, error) {
	if err := security.ValidateHTML(req.Markup, s.Cfg.Analysis.MaxHTMLBytes); err != nil {
		return nil, fmt.Errorf("validate %s: %w", req.Source, err)
	}

	key := cache.Key(req.Markup, req.Options)
	if !req.NoCache {
		if cached, ok := s.Cache.Lookup(ctx, key, s.Log); ok {
			return &Outcome{Analysis: cached, Cached: true, Stored: true}, nil
		}
	}

	doc, err := dom.ParseString(req.Markup)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.Source, err)
	}

	start := s.now()
	results, err := s.Engine.Generate(doc, req.Options)
	if err != nil {
		return nil, fmt.Errorf("analyse %s: %w", req.Source, err)
	}

	a := &db.Analysis{
		AnalysisID:           uuid.NewString(),
		Source:               req.Source,
		ContentHash:          cache.ContentHash(req.Markup),
		CacheKey:             key,
		Framework:            req.Options.Framework,
		IncludeAccessibility: req.Options.IncludeAccessibility,
		ElementCount:         len(results),
		CreatedAt:            s.now().UTC(),
		Results:              results,
	}

	s.Log.Info().
		Str("source", req.Source).
		Str("analysis_id", a.AnalysisID).
		Int("elements", a.ElementCount).
		Dur("took", s.now().Sub(start)).
		Msg("analysis complete")

	outcome := &Outcome{Analysis: a}
	if err := s.Cache.Save(ctx, a, s.Log); err != nil {
		s.Log.Warn().Err(err).Str("source", req.Source).Msg("failed to store analysis (non-fatal)")
		return outcome, nil
	}
	outcome.Stored = true

	return outcome, nil
}

// AnalyzeFile loads and analyses one file
func (s *Service) AnalyzeFile(ctx context.Context, path string, opts core.Options, noCache bool) (*Outcome, error) {
	markup, err := s.Load(path, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s.Analyze(ctx, Request{
		Source:  path,
		Markup:  markup,
		Options: opts,
		NoCache: noCache,
	})
}
