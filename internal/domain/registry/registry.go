// Package registry merges level and challenge records into a single table of
// entries keyed by name.
package registry

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/kaizolist/internal/domain/model"
)

// Registry is an immutable union of entry collections. Lookups are by name;
// All preserves the order in which names were first seen.
type Registry struct {
	byName  map[string]model.Entry
	order   []string
	dropped int
}

// New merges sources in order. A name seen again replaces the earlier entry
// value but keeps its original position. Records without a name cannot be
// looked up or credited and are dropped; Dropped reports how many.
func New(sources ...[]model.Entry) *Registry {
	r := &Registry{byName: make(map[string]model.Entry)}
	for _, src := range sources {
		for _, e := range src {
			if strings.TrimSpace(e.Name) == "" {
				r.dropped++
				continue
			}
			e.KLP = model.NormalizeKLP(e.KLP)
			if _, seen := r.byName[e.Name]; !seen {
				r.order = append(r.order, e.Name)
			}
			r.byName[e.Name] = e
		}
	}
	return r
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (model.Entry, bool) {
	if r == nil {
		return model.Entry{}, false
	}
	e, ok := r.byName[name]
	return e, ok
}

// All returns every entry in first-seen order. The slice is a fresh copy.
func (r *Registry) All() []model.Entry {
	if r == nil {
		return nil
	}
	out := make([]model.Entry, len(r.order))
	for i, name := range r.order {
		out[i] = r.byName[name]
	}
	return out
}

// Len returns the number of distinct entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Dropped returns the number of nameless records New discarded.
func (r *Registry) Dropped() int {
	if r == nil {
		return 0
	}
	return r.dropped
}

// TotalKLP sums the point value of every entry.
func (r *Registry) TotalKLP() float64 {
	var sum float64
	for _, e := range r.All() {
		sum += e.KLP
	}
	return sum
}

// ByCreator returns the entries listing name among their creators.
func (r *Registry) ByCreator(name string) []model.Entry {
	return r.filter(func(e model.Entry) bool {
		return slices.Contains(model.SplitNames(e.Creator), name)
	})
}

// ByVerifier returns the entries verified by name.
func (r *Registry) ByVerifier(name string) []model.Entry {
	return r.filter(func(e model.Entry) bool {
		return strings.TrimSpace(e.Verifier) == name
	})
}

func (r *Registry) filter(keep func(model.Entry) bool) []model.Entry {
	var out []model.Entry
	for _, e := range r.All() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// RankedEntry is an entry with its position in the KLP ordering.
type RankedEntry struct {
	model.Entry
	Rank int `json:"rank"`
}

// RankEntries orders entries by KLP descending, then name ascending, and
// assigns 1-based positions. The input is not modified.
func RankEntries(entries []model.Entry) []RankedEntry {
	out := make([]RankedEntry, len(entries))
	for i, e := range entries {
		out[i] = RankedEntry{Entry: e}
	}
	slices.SortStableFunc(out, func(a, b RankedEntry) int {
		if c := cmp.Compare(b.KLP, a.KLP); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
