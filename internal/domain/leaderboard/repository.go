package leaderboard

import "context"

// Repository holds at most one leaderboard document.
type Repository interface {
	Get(ctx context.Context) (Leaderboard, bool, error)
	Save(ctx context.Context, doc Leaderboard) error
	// SaveIfAbsent stores doc only when no document exists and reports
	// whether it did.
	SaveIfAbsent(ctx context.Context, doc Leaderboard) (bool, error)
}
