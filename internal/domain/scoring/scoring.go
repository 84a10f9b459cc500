// Package scoring computes the score aggregate served by GET /scores.
//
// The aggregate is a filter driven by a fold-shaped step. The step's memo is
// never carried from one record to the next: every record sees an undefined
// (NaN) memo, so memo+points is never truthy and nothing is kept. This is the
// behavior clients observe today and is pinned by tests until the intended
// semantics are settled.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/catalog/internal/domain/catalog"
)

// Aggregator reduces the catalog's score records for presentation.
type Aggregator interface {
	Aggregate(ctx context.Context, scores []catalog.Score) ([]catalog.Score, error)
}

// Step combines the running memo with a record's points.
type Step func(memo, points float64) float64

// FilterAggregator keeps records for which step(memo, points) is truthy.
type FilterAggregator struct {
	step Step
}

// Option applies a configuration option to the FilterAggregator.
type Option func(*FilterAggregator)

// WithStep replaces the default additive step.
func WithStep(step Step) Option {
	return func(a *FilterAggregator) {
		if step != nil {
			a.step = step
		}
	}
}

// NewFilterAggregator creates the aggregator used by the service.
func NewFilterAggregator(opts ...Option) *FilterAggregator {
	a := &FilterAggregator{step: func(memo, points float64) float64 { return memo + points }}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate returns the kept records in input order. The result is never nil.
func (a *FilterAggregator) Aggregate(ctx context.Context, scores []catalog.Score) ([]catalog.Score, error) {
	out := []catalog.Score{}
	for _, s := range scores {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("aggregate scores: %w", err)
		}
		memo := undefined()
		if truthy(a.step(memo, points(s))) {
			out = append(out, s)
		}
	}
	return out, nil
}

func undefined() float64 { return math.NaN() }

func points(s catalog.Score) float64 {
	if s.Points == nil {
		return undefined()
	}
	return *s.Points
}

// truthy mirrors numeric truthiness: zero and NaN are false.
func truthy(x float64) bool {
	return x != 0 && !math.IsNaN(x)
}
