// Package ranking orders player aggregates into leaderboards.
package ranking

import (
	"cmp"
	"slices"

	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/types"
)

// Less reports whether a ranks ahead of b: higher score first, then name
// ascending.
func Less(aScore float64, aName string, bScore float64, bName string) bool {
	return compare(aScore, aName, bScore, bName) < 0
}

func compare(aScore float64, aName string, bScore float64, bName string) int {
	if c := cmp.Compare(bScore, aScore); c != 0 {
		return c
	}
	return cmp.Compare(aName, bName)
}

// RankPlayers orders aggregates by score and assigns ranks 1..N. Equal
// scores are separated by name, so ranks never repeat.
func RankPlayers(aggs []model.PlayerAggregate) []types.Standing {
	return rank(aggs, func(a model.PlayerAggregate) float64 { return a.Score })
}

// RankByPoints orders aggregates by their raw KLP total instead of score.
func RankByPoints(aggs []model.PlayerAggregate) []types.Standing {
	return rank(aggs, func(a model.PlayerAggregate) float64 { return a.RawPointTotal })
}

func rank(aggs []model.PlayerAggregate, key func(model.PlayerAggregate) float64) []types.Standing {
	out := make([]types.Standing, len(aggs))
	keys := make([]float64, len(aggs))
	for i, a := range aggs {
		out[i] = types.Standing{
			Name:   a.Name,
			Score:  a.Score,
			KLP:    a.RawPointTotal,
			Clears: len(a.Participations),
		}
		keys[i] = key(a)
	}
	idx := make([]int, len(aggs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return compare(keys[i], out[i].Name, keys[j], out[j].Name)
	})
	ranked := make([]types.Standing, len(out))
	for pos, i := range idx {
		ranked[pos] = out[i]
		ranked[pos].Rank = pos + 1
	}
	return ranked
}

// Position returns the 1-based rank of name in standings.
func Position(standings []types.Standing, name string) (int, bool) {
	for _, s := range standings {
		if s.Name == name {
			return s.Rank, true
		}
	}
	return 0, false
}
