// Package aggregate builds per-player participation aggregates from the entry
// registry and the victors mapping.
package aggregate

import (
	"slices"
	"strings"

	"github.com/okian/kaizolist/internal/domain/dedupe"
	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/registry"
	"github.com/okian/kaizolist/internal/domain/scoring"
)

// Scorer turns a point multiset into a score.
type Scorer interface {
	Score(points []float64) float64
}

// Report summarizes one aggregation pass.
type Report struct {
	Players        int `json:"players"`
	Participations int `json:"participations"`
	// Skipped counts victor references to entries missing from the registry.
	Skipped int `json:"skipped"`
	// Duplicates counts credits dropped because the player already held one
	// for the same entry.
	Duplicates int `json:"duplicates"`
}

type builder struct {
	scorer          Scorer
	duplicateCredit bool
}

// Option applies a configuration option to the aggregation pass.
type Option func(*builder)

// WithScorer sets the scorer used to fill PlayerAggregate.Score.
func WithScorer(s Scorer) Option {
	return func(b *builder) {
		if s != nil {
			b.scorer = s
		}
	}
}

// WithDuplicateCredit counts a clear twice when a verifier is also listed as
// a victor of the same entry.
func WithDuplicateCredit(enabled bool) Option {
	return func(b *builder) {
		b.duplicateCredit = enabled
	}
}

// Build returns one aggregate per player with at least one participation.
func Build(reg *registry.Registry, victors map[string][]string, opts ...Option) []model.PlayerAggregate {
	aggs, _ := BuildWithReport(reg, victors, opts...)
	return aggs
}

// BuildWithReport is Build plus counters describing what was skipped.
//
// Verifications are credited first, in registry order, then victories in
// player name order. Players appear in the order they were first credited.
func BuildWithReport(reg *registry.Registry, victors map[string][]string, opts ...Option) ([]model.PlayerAggregate, Report) {
	b := &builder{scorer: scoring.NewScorer()}
	for _, opt := range opts {
		opt(b)
	}

	var ledger dedupe.Deduper
	if b.duplicateCredit {
		ledger = dedupe.NewPassthrough()
	} else {
		ledger = dedupe.NewInMemoryDeduper(dedupe.WithCapacity(reg.Len()))
	}

	var (
		report Report
		order  []string
		byName = make(map[string]*model.PlayerAggregate)
	)
	credit := func(player string, e model.Entry, kind model.Kind) {
		if ledger.SeenAndRecord(dedupe.Key{Player: player, Entry: e.Name}) {
			report.Duplicates++
			return
		}
		agg, ok := byName[player]
		if !ok {
			agg = &model.PlayerAggregate{Name: player}
			byName[player] = agg
			order = append(order, player)
		}
		agg.Participations = append(agg.Participations, model.Participation{
			EntryName: e.Name,
			Points:    e.KLP,
			Kind:      kind,
		})
		agg.RawPointTotal += e.KLP
		report.Participations++
	}

	for _, e := range reg.All() {
		if v := strings.TrimSpace(e.Verifier); v != "" {
			credit(v, e, model.Verification)
		}
	}

	players := make([]string, 0, len(victors))
	for p := range victors {
		players = append(players, p)
	}
	slices.Sort(players)
	for _, player := range players {
		name := strings.TrimSpace(player)
		if name == "" {
			continue
		}
		for _, entryName := range victors[player] {
			e, ok := reg.Lookup(entryName)
			if !ok {
				report.Skipped++
				continue
			}
			credit(name, e, model.Victory)
		}
	}

	out := make([]model.PlayerAggregate, 0, len(order))
	for _, name := range order {
		agg := byName[name]
		agg.Score = b.scorer.Score(agg.Points())
		out = append(out, *agg)
	}
	report.Players = len(out)
	return out, report
}
