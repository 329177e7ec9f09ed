// Package simulate projects a player's score and rank after a hypothetical
// additional clear.
package simulate

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/ranking"
	"github.com/okian/kaizolist/internal/domain/registry"
	"github.com/okian/kaizolist/internal/domain/scoring"
)

// Rank is a 1-based leaderboard position. Unranked marks a player absent
// from the board.
type Rank int

// Unranked is the rank of a player who is not on the board.
const Unranked Rank = 0

// Ranked reports whether r is a real position.
func (r Rank) Ranked() bool { return r > Unranked }

func (r Rank) String() string {
	if !r.Ranked() {
		return "–"
	}
	return strconv.Itoa(int(r))
}

// MarshalJSON encodes Unranked as null.
func (r Rank) MarshalJSON() ([]byte, error) {
	if !r.Ranked() {
		return []byte("null"), nil
	}
	return json.Marshal(int(r))
}

// Result is the projected outcome of one hypothetical clear.
type Result struct {
	Candidate     model.Entry       `json:"candidate"`
	NewScore      float64           `json:"plp"`
	Breakdown     scoring.Breakdown `json:"breakdown"`
	Delta         float64           `json:"delta"`
	OldRank       Rank              `json:"old_rank"`
	NewRank       Rank              `json:"new_rank"`
	Points        []float64         `json:"points"`
	RawPointTotal float64           `json:"klp"`
}

// ZeroPlayer is a player with no participations, used to preview what a
// first clear would be worth.
func ZeroPlayer() model.PlayerAggregate {
	return model.PlayerAggregate{}
}

// Simulate adds candidate to a copy of baseline, rescores it with scorer and
// reports its rank among all. Neither baseline nor all is modified.
//
// When baseline is not part of all both ranks are Unranked.
func Simulate(scorer *scoring.Scorer, baseline model.PlayerAggregate, candidate model.Entry, all []model.PlayerAggregate) (Result, error) {
	if baseline.Has(candidate.Name) {
		return Result{}, fmt.Errorf("%s: %w", candidate.Name, ErrAlreadyCleared)
	}
	if scorer == nil {
		scorer = scoring.NewScorer()
	}

	projected := baseline.Clone()
	points := model.NormalizeKLP(candidate.KLP)
	projected.Participations = append(projected.Participations, model.Participation{
		EntryName: candidate.Name,
		Points:    points,
		Kind:      model.Victory,
	})
	projected.RawPointTotal += points

	pts := projected.Points()
	bd := scorer.Breakdown(pts)
	projected.Score = bd.Total

	res := Result{
		Candidate:     candidate,
		NewScore:      bd.Total,
		Breakdown:     bd,
		Delta:         bd.Total - baseline.Score,
		OldRank:       Unranked,
		NewRank:       Unranked,
		Points:        pts,
		RawPointTotal: projected.RawPointTotal,
	}

	idx := slices.IndexFunc(all, func(a model.PlayerAggregate) bool { return a.Name == baseline.Name })
	if baseline.Name == "" || idx < 0 {
		return res, nil
	}

	if pos, ok := ranking.Position(ranking.RankPlayers(all), baseline.Name); ok {
		res.OldRank = Rank(pos)
	}
	// Only the baseline's score changes, so its new position is one plus the
	// number of other players that still rank ahead of it.
	ahead := 0
	for i, other := range all {
		if i == idx {
			continue
		}
		if ranking.Less(other.Score, other.Name, projected.Score, projected.Name) {
			ahead++
		}
	}
	res.NewRank = Rank(ahead + 1)
	return res, nil
}

// Available lists registry entries the player has not cleared yet, highest
// KLP first.
func Available(baseline model.PlayerAggregate, reg *registry.Registry) []model.Entry {
	var out []model.Entry
	for _, e := range reg.All() {
		if !baseline.Has(e.Name) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Entry) int {
		if c := cmp.Compare(b.KLP, a.KLP); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
