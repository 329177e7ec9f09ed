package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/kaizolist/internal/domain/types"
	"github.com/okian/kaizolist/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: key DESC, then name ASC. "less" means ranks earlier, so in-order
// traversal yields the leaderboard from best to worst. Every node tracks its
// subtree size, which turns rank lookup into a single root-to-node walk.

type node struct {
	key   float64
	name  string
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aKey, aName) should appear before (bKey, bName).
func less(aKey float64, aName string, bKey float64, bName string) bool {
	if aKey != bKey {
		return aKey > bKey
	}
	return aName < bName
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, key float64, name string, prio uint64) *node {
	if n == nil {
		return &node{key: key, name: name, prio: prio, size: 1}
	}
	if less(key, name, n.key, n.name) {
		n.left = insert(n.left, key, name, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, key, name, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

// position returns the 1-based in-order index of (key, name).
func position(n *node, key float64, name string) int {
	ahead := 0
	for n != nil {
		switch {
		case n.name == name && n.key == key:
			return ahead + nsize(n.left) + 1
		case less(key, name, n.key, n.name):
			n = n.left
		default:
			ahead += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collectTopN appends up to limit names in rank order.
func collectTopN(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.name)
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// TreapStore is an order-statistic treap over player standings.
type TreapStore struct {
	mu     sync.RWMutex
	root   *node
	byName map[string]types.Standing
	order  Order
}

// NewTreapStore constructs an empty store.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{byName: make(map[string]types.Standing)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TreapStore) key(st types.Standing) float64 {
	if s.order == ByPoints {
		return st.KLP
	}
	return st.Score
}

// Replace implements Store.Replace. The new tree is built before the lock is
// taken so readers only wait for the pointer swap.
func (s *TreapStore) Replace(ctx context.Context, standings []types.Standing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var root *node
	byName := make(map[string]types.Standing, len(standings))
	for _, st := range standings {
		if _, dup := byName[st.Name]; dup {
			return fmt.Errorf("duplicate player %q", st.Name)
		}
		byName[st.Name] = st
		root = insert(root, s.key(st), st.Name, rand.Uint64())
	}

	s.mu.Lock()
	s.root = root
	s.byName = byName
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(len(byName))
	return nil
}

// Rank implements Store.Rank in O(log n) expected time.
func (s *TreapStore) Rank(_ context.Context, name string) (types.Standing, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byName[name]
	if !ok {
		return types.Standing{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	st.Rank = position(s.root, s.key(st), name)
	return st, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(_ context.Context, n int) ([]types.Standing, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, min(n, len(s.byName)))
	collectTopN(s.root, n, &names)
	out := make([]types.Standing, len(names))
	for i, name := range names {
		out[i] = s.byName[name]
		out[i].Rank = i + 1
	}
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}
