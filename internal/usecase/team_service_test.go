package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	teammock "github.com/riskibarqy/esports-hub/internal/mocks/domain/team"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
	"github.com/stretchr/testify/mock"
)

func TestTeamService_CreateAllowsEmptyRoster(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, sequentialIDs("id"))

	repo.
		On("Insert", sameContext(ctx), mock.MatchedBy(func(v team.Team) bool { return v.Roster != nil && len(v.Roster) == 0 })).
		Return(nil).
		Once()

	got, err := service.Create(ctx, team.Draft{Name: "Team SouL"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.ID != "id-1" {
		t.Fatalf("unexpected id: %s", got.ID)
	}
}

func TestTeamService_CreateAssignsPlayerIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, sequentialIDs("id"))

	repo.On("Insert", sameContext(ctx), mock.AnythingOfType("team.Team")).Return(nil).Once()

	got, err := service.Create(ctx, fakeTeamDraft(gofakeit.New(21), 3))
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	seen := map[string]bool{got.ID: true}
	for _, p := range got.Roster {
		if p.ID == "" || seen[p.ID] {
			t.Fatalf("player id %q is empty or duplicated", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestTeamService_UpdateRequiresRoster(t *testing.T) {
	t.Parallel()

	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, sequentialIDs("id"))

	_, err := service.Update(context.Background(), "team-1", team.Draft{Name: "Team SouL", Roster: []team.PlayerDraft{}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	fields, _ := validation.FromError(err)
	if got := fields["roster"]; len(got) != 1 || got[0] != rosterRequiredMessage {
		t.Fatalf("unexpected roster errors: %v", fields)
	}
}

func TestTeamService_UpdateReportsPlayerFieldPaths(t *testing.T) {
	t.Parallel()

	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, sequentialIDs("id"))

	_, err := service.Update(context.Background(), "team-1", team.Draft{
		Name:   "Team SouL",
		Roster: []team.PlayerDraft{{Name: "Naman", IGN: "Mortal"}, {Name: "Harsh", IGN: " "}},
	})
	fields, ok := validation.FromError(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fields["roster[1].ign"]; !ok {
		t.Fatalf("expected roster[1].ign error, got %v", fields)
	}
}

func TestTeamService_UpdateRegeneratesPlayerIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, sequentialIDs("player"))
	draft := fakeTeamDraft(gofakeit.New(22), 2)

	repo.On("Replace", sameContext(ctx), mock.AnythingOfType("team.Team")).Return(true, nil).Twice()

	first, err := service.Update(ctx, "team-1", draft)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := service.Update(ctx, "team-1", draft)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if first.ID != "team-1" || second.ID != "team-1" {
		t.Fatalf("team id must be kept: %s %s", first.ID, second.ID)
	}
	for i := range first.Roster {
		if first.Roster[i].ID == second.Roster[i].ID {
			t.Fatalf("player %d kept id %s across updates", i, first.Roster[i].ID)
		}
	}
}

func TestTeamService_UpdateMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	repo.On("Replace", sameContext(ctx), mock.Anything).Return(false, nil).Once()

	_, err := NewTeamService(repo, sequentialIDs("id")).Update(ctx, "ghost", fakeTeamDraft(gofakeit.New(23), 1))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
