package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

// TournamentQuery narrows a tournament listing.
type TournamentQuery struct {
	Statuses     []tournament.Status
	SortByStatus bool
	Limit        int
}

type TournamentService struct {
	repo  tournament.Repository
	idGen idgen.Generator
}

func NewTournamentService(repo tournament.Repository, idGen idgen.Generator) *TournamentService {
	return &TournamentService{repo: repo, idGen: idGen}
}

// List filters by status first, then sorts, then truncates.
func (s *TournamentService) List(ctx context.Context, query TournamentQuery) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list tournaments", err)
	}

	items = tournament.FilterByStatus(items, query.Statuses)
	if query.SortByStatus {
		tournament.SortByStatus(items)
	}
	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	return items, nil
}

func (s *TournamentService) Get(ctx context.Context, id string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	id = strings.TrimSpace(id)
	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return tournament.Tournament{}, storageError("get tournament", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *TournamentService) Create(ctx context.Context, draft tournament.Draft) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	draft.Normalize()
	if errs := validation.Check(ctx, draft); len(errs) > 0 {
		return tournament.Tournament{}, invalidInput(errs)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}

	item := draft.Tournament(id)
	if err := s.repo.Insert(ctx, item); err != nil {
		return tournament.Tournament{}, storageError("insert tournament", err)
	}
	return item, nil
}

func (s *TournamentService) Update(ctx context.Context, id string, draft tournament.Draft) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	draft.Normalize()
	if errs := validation.Check(ctx, draft); len(errs) > 0 {
		return tournament.Tournament{}, invalidInput(errs)
	}

	item := draft.Tournament(id)
	found, err := s.repo.Replace(ctx, item)
	if err != nil {
		return tournament.Tournament{}, storageError("replace tournament", err)
	}
	if !found {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *TournamentService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageError("delete tournament", err)
	}
	if !found {
		return fmt.Errorf("%w: tournament=%s", ErrNotFound, id)
	}
	return nil
}
