package scoring

import "fmt"

// Decay selects how later (smaller) clears are weighted in the consistency term.
type Decay string

const (
	// Exponential weights the i-th clear by exp(-Lambda*i).
	Exponential Decay = "exponential"
	// Cap counts the TopN largest clears with weight 1 and ignores the rest.
	Cap Decay = "cap"
)

// Params holds every tunable constant of the PLP formula. Alternate tunings
// are parameter sets, not code paths.
type Params struct {
	// Peak term: A * k0^P.
	A float64
	P float64

	// Consistency term: B * sum(((k+Baseline)^Q - Baseline^Q) * decay(i)).
	B        float64
	Q        float64
	Baseline float64
	Decay    Decay
	Lambda   float64 // used by Exponential
	TopN     int     // used by Cap

	// Breadth term: C1*ln(1+m) + C2*sqrt(m).
	C1 float64
	C2 float64
}

// DefaultParams is the canonical tuning served by the leaderboard.
func DefaultParams() Params {
	return Params{
		A:      1.0,
		P:      0.85,
		B:      0.6,
		Q:      0.65,
		Decay:  Exponential,
		Lambda: 0.15,
		TopN:   10,
		C1:     12,
		C2:     4,
	}
}

// ReferenceParams is the top-10 capped tuning without a sqrt breadth summand.
func ReferenceParams() Params {
	p := DefaultParams()
	p.Decay = Cap
	p.TopN = 10
	p.C2 = 0
	return p
}

// LegacyParams matches the list site's score page: exponential decay with a
// baseline boost of 5 on every clear.
func LegacyParams() Params {
	p := DefaultParams()
	p.Baseline = 5
	return p
}

// Validate checks the invariants the formula relies on: sublinear exponents,
// non-negative scales, and a usable decay.
func (p Params) Validate() error {
	switch {
	case !(p.P > 0 && p.P < 1):
		return fmt.Errorf("%w: P must be in (0,1), got %v", ErrInvalidParams, p.P)
	case !(p.Q > 0 && p.Q < 1):
		return fmt.Errorf("%w: Q must be in (0,1), got %v", ErrInvalidParams, p.Q)
	case p.A < 0 || p.B < 0 || p.C1 < 0 || p.C2 < 0:
		return fmt.Errorf("%w: scale constants must be non-negative", ErrInvalidParams)
	case p.Baseline < 0:
		return fmt.Errorf("%w: baseline must be non-negative, got %v", ErrInvalidParams, p.Baseline)
	}
	switch p.Decay {
	case Exponential:
		if !(p.Lambda > 0) {
			return fmt.Errorf("%w: lambda must be positive, got %v", ErrInvalidParams, p.Lambda)
		}
	case Cap:
		if p.TopN < 1 {
			return fmt.Errorf("%w: top_n must be at least 1, got %d", ErrInvalidParams, p.TopN)
		}
	default:
		return fmt.Errorf("%w: unknown decay %q", ErrInvalidParams, p.Decay)
	}
	return nil
}
