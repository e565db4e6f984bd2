package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

type PredictionService struct {
	repo prediction.Repository
	now  func() time.Time
}

func NewPredictionService(repo prediction.Repository) *PredictionService {
	return &PredictionService{repo: repo, now: time.Now}
}

// Get returns nil when no question is published.
func (s *PredictionService) Get(ctx context.Context) (*prediction.Question, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Get")
	defer span.End()

	q, exists, err := s.repo.Get(ctx)
	if err != nil {
		return nil, storageError("get prediction", err)
	}
	if !exists {
		return nil, nil
	}
	return &q, nil
}

// Set publishes a question, replacing the current one. createdAt survives
// replacement, updatedAt is stamped on every call.
func (s *PredictionService) Set(ctx context.Context, draft prediction.Draft) (prediction.Question, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Set")
	defer span.End()

	draft.Normalize()
	if errs := validation.Check(ctx, draft); len(errs) > 0 {
		return prediction.Question{}, invalidInput(errs)
	}

	now := s.now().UTC()
	q, err := s.repo.Update(ctx, func(current prediction.Question, exists bool) (prediction.Question, error) {
		createdAt := now
		if exists && current.CreatedAt != nil {
			createdAt = *current.CreatedAt
		}
		return prediction.Question{
			QuestionText:  draft.QuestionText,
			GoogleFormURL: draft.GoogleFormURL,
			CreatedAt:     &createdAt,
			UpdatedAt:     &now,
		}, nil
	})
	if err != nil {
		return prediction.Question{}, storageError("save prediction", err)
	}
	return q, nil
}

func (s *PredictionService) Clear(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Clear")
	defer span.End()

	if err := s.repo.Clear(ctx); err != nil {
		return storageError("clear prediction", err)
	}
	return nil
}
