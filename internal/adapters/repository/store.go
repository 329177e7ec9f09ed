// Package repository holds ranked standings behind a query interface.
package repository

import (
	"context"

	"github.com/okian/kaizolist/internal/domain/types"
)

// Store provides read/write access to a ranked leaderboard.
type Store interface {
	// Replace swaps the whole leaderboard for standings. Incoming Rank values
	// are ignored; ranks are derived from the store's ordering.
	Replace(ctx context.Context, standings []types.Standing) error

	// Rank returns the standing of a player.
	// Returns ErrNotFound if the player is unknown.
	Rank(ctx context.Context, name string) (types.Standing, error)

	// TopN returns the first n standings in rank order.
	TopN(ctx context.Context, n int) ([]types.Standing, error)

	// Count returns the number of players held by the store.
	Count(ctx context.Context) int
}
