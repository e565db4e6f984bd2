package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/sourcegraph/conc/pool"
)

const homeNewsLimit = 3

// HomeFeed is everything the landing page shows.
type HomeFeed struct {
	News        []news.Article
	Tournaments []tournament.Tournament
	Leaderboard leaderboard.Leaderboard
	Prediction  *prediction.Question
}

type HomeService struct {
	newsService        *NewsService
	tournamentService  *TournamentService
	leaderboardService *LeaderboardService
	predictionService  *PredictionService
}

func NewHomeService(
	newsService *NewsService,
	tournamentService *TournamentService,
	leaderboardService *LeaderboardService,
	predictionService *PredictionService,
) *HomeService {
	return &HomeService{
		newsService:        newsService,
		tournamentService:  tournamentService,
		leaderboardService: leaderboardService,
		predictionService:  predictionService,
	}
}

// Get loads the four sections concurrently. The first failure cancels the
// remaining loads and is returned.
func (s *HomeService) Get(ctx context.Context) (HomeFeed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Get")
	defer span.End()

	var feed HomeFeed
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		items, err := s.newsService.List(ctx, homeNewsLimit)
		if err != nil {
			return fmt.Errorf("home news: %w", err)
		}
		feed.News = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.tournamentService.List(ctx, TournamentQuery{
			Statuses:     []tournament.Status{tournament.StatusOngoing, tournament.StatusUpcoming},
			SortByStatus: true,
		})
		if err != nil {
			return fmt.Errorf("home tournaments: %w", err)
		}
		feed.Tournaments = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		doc, err := s.leaderboardService.Get(ctx)
		if err != nil {
			return fmt.Errorf("home leaderboard: %w", err)
		}
		feed.Leaderboard = doc
		return nil
	})
	p.Go(func(ctx context.Context) error {
		q, err := s.predictionService.Get(ctx)
		if err != nil {
			return fmt.Errorf("home prediction: %w", err)
		}
		feed.Prediction = q
		return nil
	})

	if err := p.Wait(); err != nil {
		return HomeFeed{}, err
	}
	return feed, nil
}
