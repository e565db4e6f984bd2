// Package document stores each content resource as one JSON document and
// exposes typed collection and singleton views over it.
package document

import (
	"context"
	"errors"
)

// Resource names double as file names and postgres keys.
const (
	ResourceNews        = "news"
	ResourceTournaments = "tournaments"
	ResourceTeams       = "teams"
	ResourceLeaderboard = "leaderboard"
	ResourcePrediction  = "prediction"
)

// Resources lists every known resource in a stable order.
func Resources() []string {
	return []string{
		ResourceNews,
		ResourceTournaments,
		ResourceTeams,
		ResourceLeaderboard,
		ResourcePrediction,
	}
}

// ErrUnchanged returned from a MutateFunc aborts the write without error.
var ErrUnchanged = errors.New("document unchanged")

// MutateFunc receives the stored document (exists=false when there is none)
// and returns the replacement. A nil replacement removes the document.
type MutateFunc func(current []byte, exists bool) ([]byte, error)

// Backend persists raw documents. Update must serialize concurrent calls for
// the same resource so read-modify-write cycles never interleave.
type Backend interface {
	Load(ctx context.Context, resource string) ([]byte, bool, error)
	Update(ctx context.Context, resource string, fn MutateFunc) error
}
