// Package scoring computes the composite player score (PLP) from the point
// values (KLP) of the entries a player cleared.
//
// The score is the sum of three terms over the descending point multiset
// k[0] >= k[1] >= ... >= k[m-1]:
//
//	peak        = A * k[0]^P
//	consistency = B * sum(((k[i]+b)^Q - b^Q) * decay(i))
//	breadth     = C1*ln(1+m) + C2*sqrt(m)
//
// It is a pure function of the multiset: arrival order and player identity
// never matter, and an empty multiset scores exactly zero.
package scoring

import (
	"cmp"
	"math"
	"slices"
)

// Breakdown is the structured form of a score for display.
type Breakdown struct {
	Total       float64 `json:"total"`
	Peak        float64 `json:"peak"`
	Consistency float64 `json:"consistency"`
	Breadth     float64 `json:"breadth"`
}

// Scorer computes PLP with a fixed parameter set. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	params Params
}

// NewScorer creates a scorer using DefaultParams adjusted by opts.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{params: DefaultParams()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Params returns the parameter set in use.
func (s *Scorer) Params() Params { return s.params }

// Score returns the total PLP for the given point values.
func (s *Scorer) Score(points []float64) float64 {
	return s.Breakdown(points).Total
}

// Breakdown returns the score split into its three terms. The input slice is
// never modified.
func (s *Scorer) Breakdown(points []float64) Breakdown {
	k := sortedPositive(points)
	m := len(k)
	if m == 0 {
		return Breakdown{}
	}
	p := s.params

	peak := p.A * math.Pow(k[0], p.P)

	var sum float64
	offset := math.Pow(p.Baseline, p.Q)
	for i, v := range k {
		w := s.decay(i)
		if w == 0 {
			break
		}
		sum += (math.Pow(v+p.Baseline, p.Q) - offset) * w
	}
	consistency := p.B * sum

	breadth := p.C1*math.Log1p(float64(m)) + p.C2*math.Sqrt(float64(m))

	return Breakdown{
		Total:       peak + consistency + breadth,
		Peak:        peak,
		Consistency: consistency,
		Breadth:     breadth,
	}
}

// decay is non-increasing in i with decay(0) == 1.
func (s *Scorer) decay(i int) float64 {
	if s.params.Decay == Cap {
		if i < s.params.TopN {
			return 1
		}
		return 0
	}
	return math.Exp(-s.params.Lambda * float64(i))
}

// sortedPositive copies the finite positive values and sorts them descending.
// Zero-point clears carry no weight in any term, so they are dropped.
func sortedPositive(points []float64) []float64 {
	out := make([]float64, 0, len(points))
	for _, v := range points {
		if v > 0 && !math.IsInf(v, 1) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b float64) int { return cmp.Compare(b, a) })
	return out
}

var defaultScorer = NewScorer()

// ComputeScore scores points with DefaultParams.
func ComputeScore(points []float64) float64 { return defaultScorer.Score(points) }

// ComputeScoreBreakdown breaks down points with DefaultParams.
func ComputeScoreBreakdown(points []float64) Breakdown { return defaultScorer.Breakdown(points) }
