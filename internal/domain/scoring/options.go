package scoring

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithParams replaces the whole parameter set. Invalid sets are ignored and
// the previous parameters are kept.
func WithParams(p Params) Option {
	return func(s *Scorer) {
		if p.Validate() == nil {
			s.params = p
		}
	}
}

// WithExponentialDecay switches the consistency term to exp(-lambda*i) weights.
func WithExponentialDecay(lambda float64) Option {
	return func(s *Scorer) {
		if lambda > 0 {
			s.params.Decay = Exponential
			s.params.Lambda = lambda
		}
	}
}

// WithTopNCap switches the consistency term to the n largest clears.
func WithTopNCap(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.params.Decay = Cap
			s.params.TopN = n
		}
	}
}
