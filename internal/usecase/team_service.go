package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/team"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

const rosterRequiredMessage = "at least one player is required in the roster"

type TeamService struct {
	repo  team.Repository
	idGen idgen.Generator
}

func NewTeamService(repo team.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{repo: repo, idGen: idGen}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list teams", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	id = strings.TrimSpace(id)
	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, storageError("get team", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}
	return item, nil
}

// Create accepts an empty roster. The team and every player get fresh ids.
func (s *TeamService) Create(ctx context.Context, draft team.Draft) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	draft.Normalize()
	if errs := validation.Check(ctx, draft); len(errs) > 0 {
		return team.Team{}, invalidInput(errs)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	playerIDs, err := s.playerIDs(len(draft.Roster))
	if err != nil {
		return team.Team{}, err
	}

	item := draft.Team(id, playerIDs)
	if err := s.repo.Insert(ctx, item); err != nil {
		return team.Team{}, storageError("insert team", err)
	}
	return item, nil
}

// Update requires a non-empty roster and issues new ids to every player, so
// player identity does not survive an update.
func (s *TeamService) Update(ctx context.Context, id string, draft team.Draft) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	draft.Normalize()
	errs := validation.Check(ctx, draft)
	if len(draft.Roster) == 0 {
		errs.Add("roster", rosterRequiredMessage)
	}
	if len(errs) > 0 {
		return team.Team{}, invalidInput(errs)
	}

	playerIDs, err := s.playerIDs(len(draft.Roster))
	if err != nil {
		return team.Team{}, err
	}

	item := draft.Team(id, playerIDs)
	found, err := s.repo.Replace(ctx, item)
	if err != nil {
		return team.Team{}, storageError("replace team", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageError("delete team", err)
	}
	if !found {
		return fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}
	return nil
}

func (s *TeamService) playerIDs(n int) ([]string, error) {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
