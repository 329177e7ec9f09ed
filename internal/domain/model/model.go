// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strings"
)

// Kind tells how a player earned credit for an entry.
type Kind string

const (
	// Verification is the first recorded clear of an entry.
	Verification Kind = "verification"
	// Victory is any clear recorded after the verification.
	Victory Kind = "victory"
)

// Entry is a list level or challenge. Name is the identity key.
type Entry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Creator  string  `json:"creator"`  // comma separated creator names
	Verifier string  `json:"verifier"` // player credited with the first clear
	KLP      float64 `json:"klp"`      // point value, never negative
}

// NormalizeKLP maps missing, non-finite or negative point values to 0.
func NormalizeKLP(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Participation is one credited clear of an entry by a player.
type Participation struct {
	EntryName string  `json:"entry"`
	Points    float64 `json:"points"`
	Kind      Kind    `json:"kind"`
}

// PlayerAggregate is the complete per-player collection of participations
// plus derived totals. Aggregates are built fresh on every recompute and
// treated as read-only afterwards.
type PlayerAggregate struct {
	Name           string          `json:"name"`
	Participations []Participation `json:"participations"`
	RawPointTotal  float64         `json:"klp"`
	Score          float64         `json:"plp"`
}

// Points returns the point values of all participations in insertion order.
func (p PlayerAggregate) Points() []float64 {
	out := make([]float64, len(p.Participations))
	for i, part := range p.Participations {
		out[i] = part.Points
	}
	return out
}

// Has reports whether the player already holds credit for the named entry.
func (p PlayerAggregate) Has(entryName string) bool {
	for _, part := range p.Participations {
		if part.EntryName == entryName {
			return true
		}
	}
	return false
}

// TotalByKind sums the points earned through a single kind of participation.
func (p PlayerAggregate) TotalByKind(kind Kind) float64 {
	var sum float64
	for _, part := range p.Participations {
		if part.Kind == kind {
			sum += part.Points
		}
	}
	return sum
}

// VerificationTotal is the KLP earned from verifications.
func (p PlayerAggregate) VerificationTotal() float64 { return p.TotalByKind(Verification) }

// VictoryTotal is the KLP earned from victories.
func (p PlayerAggregate) VictoryTotal() float64 { return p.TotalByKind(Victory) }

// Clone returns a deep copy so callers can derive hypothetical states
// without touching the original.
func (p PlayerAggregate) Clone() PlayerAggregate {
	c := p
	if p.Participations != nil {
		c.Participations = make([]Participation, len(p.Participations))
		copy(c.Participations, p.Participations)
	}
	return c
}

// SplitNames splits a comma separated name list, trimming blanks.
func SplitNames(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
