package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

type LeaderboardService struct {
	repo   leaderboard.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewLeaderboardService(repo leaderboard.Repository, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the stored leaderboard. The first read of an empty store
// persists and returns a default document.
func (s *LeaderboardService) Get(ctx context.Context) (leaderboard.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Get")
	defer span.End()

	doc, exists, err := s.repo.Get(ctx)
	if err != nil {
		return leaderboard.Leaderboard{}, storageError("get leaderboard", err)
	}
	if exists {
		return doc, nil
	}

	doc = leaderboard.NewDefault(s.now())
	written, err := s.repo.SaveIfAbsent(ctx, doc)
	if err != nil {
		return leaderboard.Leaderboard{}, storageError("save default leaderboard", err)
	}
	if written {
		s.logger.InfoContext(ctx, "default leaderboard created", "tournament_id", doc.TournamentID)
		return doc, nil
	}

	// Another writer got there first.
	stored, exists, err := s.repo.Get(ctx)
	if err != nil {
		return leaderboard.Leaderboard{}, storageError("get leaderboard", err)
	}
	if !exists {
		return doc, nil
	}
	return stored, nil
}

func (s *LeaderboardService) Replace(ctx context.Context, doc leaderboard.Leaderboard) (leaderboard.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Replace")
	defer span.End()

	doc.Normalize()
	if errs := validation.Check(ctx, doc); len(errs) > 0 {
		return leaderboard.Leaderboard{}, invalidInput(errs)
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return leaderboard.Leaderboard{}, storageError("save leaderboard", err)
	}
	return doc, nil
}

// Reset replaces the stored leaderboard with a fresh default.
func (s *LeaderboardService) Reset(ctx context.Context) (leaderboard.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Reset")
	defer span.End()

	doc := leaderboard.NewDefault(s.now())
	if err := s.repo.Save(ctx, doc); err != nil {
		return leaderboard.Leaderboard{}, storageError("reset leaderboard", err)
	}
	return doc, nil
}
