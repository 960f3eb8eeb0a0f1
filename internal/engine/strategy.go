// Package engine orders the resolution strategies and runs an error
// description through them: knowledge base first, then cache, then the
// AI chain, with a generic fallback when everything fails.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/errdoctor/internal/cache"
	"github.com/abhisek/errdoctor/internal/diagnosis"
	"github.com/abhisek/errdoctor/internal/kb"
	"github.com/abhisek/errdoctor/internal/profile"
)

// Strategy is one way to resolve an error description. Lower priority
// runs first. A nil result passes control to the next strategy; a
// strategy must not fail in any other way.
type Strategy interface {
	Name() string
	Priority() int
	Resolve(ctx context.Context, errorText string, p profile.Profile) *diagnosis.Diagnosis
}

// kbStrategy answers from the local knowledge base when the match score
// clears the trust threshold. The matcher's own floor decides whether a
// match exists at all; the threshold decides whether it beats asking AI.
type kbStrategy struct {
	matcher   *kb.Matcher
	threshold float64
	log       *zap.Logger
}

// NewKBStrategy creates the knowledge-base strategy with the given trust
// threshold.
func NewKBStrategy(matcher *kb.Matcher, threshold float64, log *zap.Logger) Strategy {
	return &kbStrategy{matcher: matcher, threshold: threshold, log: log}
}

func (s *kbStrategy) Name() string  { return "knowledge-base" }
func (s *kbStrategy) Priority() int { return 1 }

func (s *kbStrategy) Resolve(_ context.Context, errorText string, p profile.Profile) *diagnosis.Diagnosis {
	m := s.matcher.Match(errorText)
	if m == nil {
		return nil
	}
	if m.Score < s.threshold {
		s.log.Debug("knowledge base match below trust threshold",
			zap.String("template", m.Template.ID),
			zap.Float64("score", m.Score), zap.Float64("threshold", s.threshold))
		return nil
	}
	return diagnosis.FromKBMatch(m, errorText, p)
}

// cacheStrategy answers from previously resolved diagnoses.
type cacheStrategy struct {
	cache *cache.Cache
}

// NewCacheStrategy creates the cache-lookup strategy.
func NewCacheStrategy(c *cache.Cache) Strategy {
	return &cacheStrategy{cache: c}
}

func (s *cacheStrategy) Name() string  { return "cache" }
func (s *cacheStrategy) Priority() int { return 2 }

func (s *cacheStrategy) Resolve(ctx context.Context, errorText string, p profile.Profile) *diagnosis.Diagnosis {
	return s.cache.Get(ctx, errorText, p)
}

// aiStrategy asks the provider chain and writes successful answers back
// to the cache so the next identical question costs nothing.
type aiStrategy struct {
	gen   *diagnosis.Generator
	cache *cache.Cache
}

// NewAIStrategy creates the AI strategy. The cache may be nil when no
// writeback is wanted.
func NewAIStrategy(gen *diagnosis.Generator, c *cache.Cache) Strategy {
	return &aiStrategy{gen: gen, cache: c}
}

func (s *aiStrategy) Name() string  { return "ai" }
func (s *aiStrategy) Priority() int { return 3 }

func (s *aiStrategy) Resolve(ctx context.Context, errorText string, p profile.Profile) *diagnosis.Diagnosis {
	d := s.gen.Generate(ctx, errorText, p)
	if d != nil && s.cache != nil {
		s.cache.Put(ctx, errorText, p, d)
	}
	return d
}
