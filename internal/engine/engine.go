package engine

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/errdoctor/internal/diagnosis"
	"github.com/abhisek/errdoctor/internal/profile"
	"github.com/abhisek/errdoctor/internal/store"
	"github.com/abhisek/errdoctor/internal/validate"
)

// Result is the outcome of one resolution. Either Rejection is set and
// the text never reached the strategies, or Diagnosis is set together
// with the strategy that produced it.
type Result struct {
	Diagnosis *diagnosis.Diagnosis
	Strategy  string
	Score     float64
	Rejection string
}

// Rejected reports whether validation refused the text.
func (r Result) Rejected() bool {
	return r.Rejection != ""
}

// Engine validates an error description and walks the strategy chain
// until one answers. Resolve is total: whatever fails internally, the
// caller always gets a result.
type Engine struct {
	validator  *validate.Validator
	strategies []Strategy
	history    store.HistoryRepo
	log        *zap.Logger
}

// New creates an Engine over the given strategies, sorted by priority
// once at construction. The history repo may be nil.
func New(v *validate.Validator, strategies []Strategy, history store.HistoryRepo, log *zap.Logger) *Engine {
	sorted := make([]Strategy, len(strategies))
	copy(sorted, strategies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Engine{validator: v, strategies: sorted, history: history, log: log}
}

// Resolve produces a diagnosis for errorText. Too-vague descriptions are
// rejected with a reason; otherwise every strategy gets a turn and the
// generic fallback answers when none does.
func (e *Engine) Resolve(ctx context.Context, errorText string, p profile.Profile) Result {
	v := e.validator.Validate(errorText)
	if !v.Valid {
		e.log.Info("error description rejected", zap.String("reason", v.Rejection))
		return Result{Rejection: v.Rejection, Score: v.Score}
	}

	for _, s := range e.strategies {
		d := s.Resolve(ctx, errorText, p)
		if d == nil {
			continue
		}
		e.log.Info("diagnosis resolved",
			zap.String("strategy", s.Name()),
			zap.String("error_type", d.ErrorType),
			zap.Float64("confidence", d.Confidence))
		e.record(ctx, errorText, d)
		return Result{Diagnosis: d, Strategy: s.Name(), Score: v.Score}
	}

	e.log.Info("no strategy produced a diagnosis, using generic fallback")
	d := diagnosis.Generic(p)
	e.record(ctx, errorText, d)
	return Result{Diagnosis: d, Strategy: "fallback", Score: v.Score}
}

// record appends the diagnosis to history best-effort.
func (e *Engine) record(ctx context.Context, errorText string, d *diagnosis.Diagnosis) {
	if e.history == nil {
		return
	}
	payload, err := json.Marshal(d)
	if err != nil {
		e.log.Warn("diagnosis not recorded in history", zap.Error(err))
		return
	}
	entry := &store.HistoryEntry{
		ID:         d.ID,
		ErrorText:  errorText,
		ErrorType:  d.ErrorType,
		Source:     d.Source,
		Confidence: d.Confidence,
		Diagnosis:  payload,
		CreatedAt:  time.Now().UTC(),
	}
	if err := e.history.Append(ctx, entry); err != nil {
		e.log.Warn("diagnosis not recorded in history", zap.Error(err))
	}
}
