package document

import (
	"context"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

func NewNewsCollection(backend Backend) *Collection[news.Article] {
	return NewCollection(backend, ResourceNews, func(a news.Article) string { return a.ID })
}

func NewTournamentCollection(backend Backend) *Collection[tournament.Tournament] {
	return NewCollection(backend, ResourceTournaments, func(t tournament.Tournament) string { return t.ID })
}

func NewTeamCollection(backend Backend) *Collection[team.Team] {
	return NewCollection(backend, ResourceTeams, func(t team.Team) string { return t.ID })
}

func NewLeaderboardSingleton(backend Backend) *Singleton[leaderboard.Leaderboard] {
	return NewSingleton[leaderboard.Leaderboard](backend, ResourceLeaderboard)
}

func NewPredictionSingleton(backend Backend) *Singleton[prediction.Question] {
	return NewSingleton[prediction.Question](backend, ResourcePrediction)
}

// Rewriter stores a resource back in its current shape.
type Rewriter interface {
	// Rewrite returns the number of records written.
	Rewrite(ctx context.Context) (int, error)
}

// Rewriters returns one Rewriter per resource, keyed by resource name.
func Rewriters(backend Backend) map[string]Rewriter {
	return map[string]Rewriter{
		ResourceNews:        NewNewsCollection(backend),
		ResourceTournaments: NewTournamentCollection(backend),
		ResourceTeams:       NewTeamCollection(backend),
		ResourceLeaderboard: singletonRewriter[leaderboard.Leaderboard]{NewLeaderboardSingleton(backend)},
		ResourcePrediction:  singletonRewriter[prediction.Question]{NewPredictionSingleton(backend)},
	}
}

type singletonRewriter[T any] struct {
	s *Singleton[T]
}

func (r singletonRewriter[T]) Rewrite(ctx context.Context) (int, error) {
	found, err := r.s.Rewrite(ctx)
	if err != nil || !found {
		return 0, err
	}
	return 1, nil
}
